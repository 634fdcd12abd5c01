package chain

import (
	"fmt"
	"strings"
)

// ErrorKind is the typed outcome vocabulary the mint flow reports to
// callers.
type ErrorKind string

const (
	KindNotEligible         ErrorKind = "not_eligible"
	KindWalletNotConnected  ErrorKind = "wallet_not_connected"
	KindMintInProgress      ErrorKind = "mint_in_progress"
	KindAlreadyMinted       ErrorKind = "already_minted"
	KindNetworkSwitchFailed ErrorKind = "network_switch_failed"
	KindUserRejected        ErrorKind = "user_rejected"
	KindInsufficientFunds   ErrorKind = "insufficient_funds"
	KindSubmissionFailed    ErrorKind = "submission_failed"
	KindConfirmationTimeout ErrorKind = "confirmation_timeout"
	KindTransactionReverted ErrorKind = "transaction_reverted"
	KindUnmappedCourse      ErrorKind = "unmapped_course"
	KindUnknown             ErrorKind = "unknown_error"
)

// MintError is the typed error the mint flow returns. TxHash is set
// whenever a transaction hash was obtained before the failure, because
// the transaction may still land on-chain regardless of what this
// process believes.
type MintError struct {
	Kind   ErrorKind
	TxHash string
	Err    error
}

func (e *MintError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	if e.TxHash != "" {
		return fmt.Sprintf("%s (tx %s): %v", e.Kind, e.TxHash, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *MintError) Unwrap() error { return e.Err }

// NewMintError builds a MintError.
func NewMintError(kind ErrorKind, txHash string, err error) *MintError {
	return &MintError{Kind: kind, TxHash: txHash, Err: err}
}

// providerErrorPhrases maps known provider/wallet error fragments to
// kinds. Matching is first-hit on the lowercased message, so more
// specific phrases go first. Extend the table here; control flow never
// needs to change.
var providerErrorPhrases = []struct {
	phrase string
	kind   ErrorKind
}{
	{"user rejected", KindUserRejected},
	{"user denied", KindUserRejected},
	{"rejected the request", KindUserRejected},
	{"request rejected", KindUserRejected},
	{"insufficient funds", KindInsufficientFunds},
	{"insufficient balance", KindInsufficientFunds},
	{"already has badge", KindAlreadyMinted},
	{"already minted", KindAlreadyMinted},
	{"badge already claimed", KindAlreadyMinted},
	{"unrecognized chain", KindNetworkSwitchFailed},
	{"chain mismatch", KindNetworkSwitchFailed},
	{"wrong network", KindNetworkSwitchFailed},
	{"invalid chain id", KindNetworkSwitchFailed},
	{"execution reverted", KindTransactionReverted},
	{"transaction reverted", KindTransactionReverted},
	{"nonce too low", KindSubmissionFailed},
	{"replacement transaction underpriced", KindSubmissionFailed},
	{"gas required exceeds allowance", KindInsufficientFunds},
}

// ClassifyProviderError maps a raw provider error message onto the
// typed vocabulary. It is deliberately heuristic: providers report
// failures as free text.
func ClassifyProviderError(raw string) ErrorKind {
	msg := strings.ToLower(raw)
	for _, entry := range providerErrorPhrases {
		if strings.Contains(msg, entry.phrase) {
			return entry.kind
		}
	}
	return KindUnknown
}
