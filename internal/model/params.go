package model

import "fmt"

// Params holds the consensus constants of a network.
type Params struct {
	Name        string
	Target      string
	BlockReward uint64
	Genesis     Block
	GenesisID   string
}

const mainnetTarget = "00000002af000000000000000000000000000000000000000000000000000000"

// Mainnet is the fixed production network.
var Mainnet = Params{
	Name:        "mainnet",
	Target:      mainnetTarget,
	BlockReward: 50_000_000_000_000,
	Genesis: Block{
		TxIDs:   []string{},
		Nonce:   "0000000000000000000000000000000000000000000000000000002634878840",
		Created: 1624219079,
		Target:  mainnetTarget,
		Miner:   strPtr("dionyziz"),
		Note:    strPtr("The Economist 2021-06-20: Crypto-miners are probably to blame for the graphics-chip shortage"),
	},
	GenesisID: "00000000a420b7cefa2b7730243316921ed59ffe836e111ca3801f82a4f5360e",
}

// Check recomputes the genesis id. A mismatch means the constants are corrupt.
func (p Params) Check() error {
	if !p.Genesis.IsGenesis() {
		return fmt.Errorf("%s genesis block has a parent", p.Name)
	}
	id, err := ObjectID(p.Genesis)
	if err != nil {
		return fmt.Errorf("hash %s genesis: %w", p.Name, err)
	}
	if id != p.GenesisID {
		return fmt.Errorf("%s genesis id mismatch: computed %s, configured %s", p.Name, id, p.GenesisID)
	}
	return nil
}

// GenesisBlock returns a copy of the genesis block.
func (p Params) GenesisBlock() *Block {
	g := p.Genesis
	g.TxIDs = append([]string{}, p.Genesis.TxIDs...)
	return &g
}

func strPtr(s string) *string { return &s }
