package chain

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// BadgeContractABI is the deployed SynauLearnBadge interface. Course ids
// are numeric on-chain; the database UUIDs are translated by the course
// mapping service before they reach this layer.
const BadgeContractABI = `[
  {"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"courseId","type":"uint256"},{"internalType":"string","name":"tokenURI","type":"string"}],"name":"mintBadge","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"user","type":"address"},{"internalType":"uint256","name":"courseId","type":"uint256"}],"name":"hasBadge","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"user","type":"address"},{"internalType":"uint256","name":"courseId","type":"uint256"}],"name":"getUserBadge","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"tokensOfOwner","outputs":[{"internalType":"uint256[]","name":"","type":"uint256[]"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"tokenToCourse","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"user","type":"address"},{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"courseId","type":"uint256"}],"name":"BadgeMinted","type":"event"}
]`

// BadgeContract is a high-level wrapper around the on-chain badge
// contract, in the manner of a generated binding.
type BadgeContract struct {
	abi      abi.ABI
	address  common.Address
	contract *bind.BoundContract
}

// NewBadgeContract connects to an already-deployed badge contract.
func NewBadgeContract(addr common.Address, backend bind.ContractBackend) (*BadgeContract, error) {
	parsed, err := abi.JSON(strings.NewReader(BadgeContractABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &BadgeContract{
		abi:      parsed,
		address:  addr,
		contract: bound,
	}, nil
}

// Address returns the deployed contract address.
func (b *BadgeContract) Address() common.Address { return b.address }

// MintBadge mints a completion badge to the holder wallet.
func (b *BadgeContract) MintBadge(opts *bind.TransactOpts, to common.Address, courseID *big.Int, tokenURI string) (*ethtypes.Transaction, error) {
	return b.contract.Transact(opts, "mintBadge", to, courseID, tokenURI)
}

// HasBadge reports whether the wallet already holds a badge for the course.
func (b *BadgeContract) HasBadge(ctx context.Context, user common.Address, courseID *big.Int) (bool, error) {
	var out []interface{}
	err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasBadge", user, courseID)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// GetUserBadge returns the wallet's token id for the course, 0 if none.
func (b *BadgeContract) GetUserBadge(ctx context.Context, user common.Address, courseID *big.Int) (*big.Int, error) {
	var out []interface{}
	err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserBadge", user, courseID)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// TokensOfOwner returns every badge token id the wallet holds.
func (b *BadgeContract) TokensOfOwner(ctx context.Context, owner common.Address) ([]*big.Int, error) {
	var out []interface{}
	err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokensOfOwner", owner)
	if err != nil {
		return nil, err
	}
	return out[0].([]*big.Int), nil
}

// TokenURI returns the metadata URI for a token.
func (b *BadgeContract) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	var out []interface{}
	err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// TokenToCourse returns the numeric course id a token was minted for.
func (b *BadgeContract) TokenToCourse(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	var out []interface{}
	err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokenToCourse", tokenID)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}
