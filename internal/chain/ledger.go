package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/synaulearn/synaulearn-backend/internal/logger"
)

// Mint lifecycle states, reported through the status callback. The
// callback is pure observation: it never affects control flow and may
// be nil.
const (
	StateSwitchingNetwork     = "switching_network"
	StateNetworkReady         = "network_ready"
	StateNetworkFailed        = "network_failed"
	StateBuildingPayload      = "building_payload"
	StateSubmitting           = "submitting"
	StateSubmitted            = "submitted"
	StateSubmitFailed         = "submit_failed"
	StateAwaitingConfirmation = "awaiting_confirmation"
	StateConfirmedSuccess     = "confirmed_success"
	StateConfirmedReverted    = "confirmed_reverted"
	StateConfirmationTimeout  = "confirmation_timeout"
)

type StatusFunc func(state string)

// Outcome is the terminal result of a SubmitMint call.
type Outcome string

const (
	OutcomeNetworkFailed       Outcome = "network_failed"
	OutcomeSubmitFailed        Outcome = "submit_failed"
	OutcomeConfirmedSuccess    Outcome = "confirmed_success"
	OutcomeConfirmedReverted   Outcome = "confirmed_reverted"
	OutcomeConfirmationTimeout Outcome = "confirmation_timeout"
)

// SubmitResult carries the terminal outcome of one mint submission.
// TxHash is set for every outcome reached after the transaction was
// accepted by the node; only pre-submission failures leave it empty.
type SubmitResult struct {
	Outcome Outcome
	TxHash  string
	Err     error
}

// Ledger is the read/write boundary to the badge contract.
type Ledger interface {
	// HasBadge reports whether the wallet holds a badge for the course.
	// RPC failure is logged and reported as false: absence of proof is
	// not proof of absence, and the caller falls back to its local cache.
	HasBadge(ctx context.Context, wallet string, courseNumber uint64) bool

	// GetTokenID returns the wallet's token id for the course, 0 if none.
	GetTokenID(ctx context.Context, wallet string, courseNumber uint64) (uint64, error)

	// SubmitMint drives the full transaction lifecycle. The pre-submission
	// phase honors ctx cancellation; once a transaction hash exists the
	// operation can no longer be aborted and the confirmation wait runs
	// under its own bounded deadline.
	SubmitMint(ctx context.Context, wallet string, courseNumber uint64, tokenURI string, onStatus StatusFunc) SubmitResult
}

type badgeContractBackend interface {
	HasBadge(ctx context.Context, user common.Address, courseID *big.Int) (bool, error)
	GetUserBadge(ctx context.Context, user common.Address, courseID *big.Int) (*big.Int, error)
	MintBadge(opts *bind.TransactOpts, to common.Address, courseID *big.Int, tokenURI string) (*ethtypes.Transaction, error)
}

type chainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

type receiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
}

type ledger struct {
	log      *logger.Logger
	cfg      ClientConfig
	contract badgeContractBackend
	net      chainIDReader
	receipts receiptReader
	signer   *bind.TransactOpts

	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// NewLedger dials the configured RPC endpoint and binds the badge
// contract.
func NewLedger(cfg ClientConfig, baseLog *logger.Logger) (Ledger, error) {
	client, signer, err := cfg.Dial()
	if err != nil {
		return nil, err
	}
	contract, err := NewBadgeContract(cfg.ContractAddress, client)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("bind badge contract: %w", err)
	}
	return newLedger(cfg, baseLog, contract, client, client, signer), nil
}

func newLedger(cfg ClientConfig, baseLog *logger.Logger, contract badgeContractBackend, net chainIDReader, receipts receiptReader, signer *bind.TransactOpts) *ledger {
	return &ledger{
		log:            baseLog.With("service", "ChainLedger"),
		cfg:            cfg,
		contract:       contract,
		net:            net,
		receipts:       receipts,
		signer:         signer,
		confirmTimeout: 2 * time.Minute,
		pollInterval:   3 * time.Second,
	}
}

var _ chainIDReader = (*ethclient.Client)(nil)
var _ receiptReader = (*ethclient.Client)(nil)

func (l *ledger) HasBadge(ctx context.Context, wallet string, courseNumber uint64) bool {
	has, err := l.contract.HasBadge(ctx, common.HexToAddress(wallet), new(big.Int).SetUint64(courseNumber))
	if err != nil {
		l.log.Warn("hasBadge call failed", "wallet", wallet, "course_number", courseNumber, "error", err)
		return false
	}
	return has
}

func (l *ledger) GetTokenID(ctx context.Context, wallet string, courseNumber uint64) (uint64, error) {
	id, err := l.contract.GetUserBadge(ctx, common.HexToAddress(wallet), new(big.Int).SetUint64(courseNumber))
	if err != nil {
		return 0, fmt.Errorf("getUserBadge: %w", err)
	}
	if id == nil {
		return 0, nil
	}
	return id.Uint64(), nil
}

func (l *ledger) SubmitMint(ctx context.Context, wallet string, courseNumber uint64, tokenURI string, onStatus StatusFunc) SubmitResult {
	notify := func(state string) {
		if onStatus != nil {
			onStatus(state)
		}
	}

	// Verify the endpoint serves the contract's deployment network before
	// anything is signed. A stale network context silently produces
	// confusing on-chain state.
	notify(StateSwitchingNetwork)
	gotID, err := l.net.ChainID(ctx)
	if err != nil {
		notify(StateNetworkFailed)
		return SubmitResult{Outcome: OutcomeNetworkFailed, Err: NewMintError(KindNetworkSwitchFailed, "", fmt.Errorf("read chain id: %w", err))}
	}
	if gotID == nil || gotID.Cmp(l.cfg.ChainID) != 0 {
		notify(StateNetworkFailed)
		return SubmitResult{Outcome: OutcomeNetworkFailed, Err: NewMintError(KindNetworkSwitchFailed, "", fmt.Errorf("endpoint chain id %v, want %v", gotID, l.cfg.ChainID))}
	}
	notify(StateNetworkReady)

	notify(StateBuildingPayload)
	if err := ctx.Err(); err != nil {
		// Caller aborted; nothing has been signed yet.
		notify(StateSubmitFailed)
		return SubmitResult{Outcome: OutcomeSubmitFailed, Err: NewMintError(KindSubmissionFailed, "", err)}
	}
	to := common.HexToAddress(wallet)
	courseID := new(big.Int).SetUint64(courseNumber)
	opts := *l.signer
	opts.Context = ctx

	notify(StateSubmitting)
	tx, err := l.contract.MintBadge(&opts, to, courseID, tokenURI)
	if err != nil {
		notify(StateSubmitFailed)
		kind := ClassifyProviderError(err.Error())
		if kind == KindUnknown {
			kind = KindSubmissionFailed
		}
		return SubmitResult{Outcome: OutcomeSubmitFailed, Err: NewMintError(kind, "", err)}
	}
	txHash := tx.Hash()
	notify(StateSubmitted)

	// Past this point the transaction may already be irreversible; the
	// caller's context no longer governs, only the bounded wait does.
	notify(StateAwaitingConfirmation)
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.confirmTimeout)
	defer cancel()
	return l.awaitConfirmation(waitCtx, txHash, notify)
}

func (l *ledger) awaitConfirmation(ctx context.Context, txHash common.Hash, notify func(string)) SubmitResult {
	hashHex := txHash.Hex()
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := l.receipts.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			if receipt.Status == ethtypes.ReceiptStatusSuccessful {
				notify(StateConfirmedSuccess)
				return SubmitResult{Outcome: OutcomeConfirmedSuccess, TxHash: hashHex}
			}
			notify(StateConfirmedReverted)
			return SubmitResult{Outcome: OutcomeConfirmedReverted, TxHash: hashHex, Err: NewMintError(KindTransactionReverted, hashHex, fmt.Errorf("transaction reverted on-chain"))}
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			l.log.Warn("receipt poll failed", "tx_hash", hashHex, "error", err)
		}

		select {
		case <-ctx.Done():
			notify(StateConfirmationTimeout)
			return SubmitResult{Outcome: OutcomeConfirmationTimeout, TxHash: hashHex, Err: NewMintError(KindConfirmationTimeout, hashHex, fmt.Errorf("confirmation not observed within %s", l.confirmTimeout))}
		case <-ticker.C:
		}
	}
}
