package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ClientConfig carries everything the ledger needs to talk to the badge
// contract. It is constructed once in main and injected; there is no
// ambient client state.
type ClientConfig struct {
	RPCURL          string
	ChainID         *big.Int
	ContractAddress common.Address
	MinterKeyHex    string
}

// Dial connects to the RPC endpoint and builds the signing transactor
// pinned to the configured chain id.
func (c ClientConfig) Dial() (*ethclient.Client, *bind.TransactOpts, error) {
	if c.RPCURL == "" {
		return nil, nil, fmt.Errorf("missing chain rpc url")
	}
	if c.ChainID == nil || c.ChainID.Sign() <= 0 {
		return nil, nil, fmt.Errorf("missing chain id")
	}
	if (c.ContractAddress == common.Address{}) {
		return nil, nil, fmt.Errorf("missing badge contract address")
	}

	client, err := ethclient.Dial(c.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial chain rpc: %w", err)
	}

	key, err := crypto.HexToECDSA(c.MinterKeyHex)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("parse minter key: %w", err)
	}

	// The chain id is pinned here so every signed transaction targets the
	// configured network regardless of what the endpoint reports.
	opts, err := bind.NewKeyedTransactorWithChainID(key, c.ChainID)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("build transactor: %w", err)
	}
	return client, opts, nil
}
