package lakestream

import "encoding/json"

// StreamerMessage is one NEAR block's worth of data as laid out by a
// NEAR Lake style data store: the block header plus every shard that was
// produced for that height.
//
// A StreamerMessage is immutable once produced; consumers read it and
// discard it.
type StreamerMessage struct {
	Block  Block   `json:"block"`
	Shards []Shard `json:"shards"`
}

// ReceiptExecutionOutcomes flattens the receipt execution outcomes of all
// shards into a single slice, preserving shard order and the order of
// outcomes within each shard.
func (m StreamerMessage) ReceiptExecutionOutcomes() []ReceiptExecutionOutcome {
	var outcomes []ReceiptExecutionOutcome
	for _, shard := range m.Shards {
		outcomes = append(outcomes, shard.ReceiptExecutionOutcomes...)
	}

	return outcomes
}

// Block carries the header of the block the message belongs to.
type Block struct {
	Header BlockHeader `json:"header"`
}

// BlockHeader holds the subset of the NEAR block header the pipeline cares about.
type BlockHeader struct {
	Height         uint64 `json:"height"`          // Block height
	Hash           string `json:"hash"`            // Block hash
	Timestamp      uint64 `json:"timestamp"`       // Block production time in nanoseconds since epoch
	ChunksIncluded uint64 `json:"chunks_included"` // Number of chunks (shards) included at this height
}

// Shard groups the receipt execution outcomes recorded on a single shard.
type Shard struct {
	ShardID                  uint64                    `json:"shard_id"`
	ReceiptExecutionOutcomes []ReceiptExecutionOutcome `json:"receipt_execution_outcomes"`
}

// ReceiptExecutionOutcome pairs a receipt with the outcome of its execution.
type ReceiptExecutionOutcome struct {
	Receipt          Receipt          `json:"receipt"`
	ExecutionOutcome ExecutionOutcome `json:"execution_outcome"`
}

// Receipt is a NEAR receipt: the unit of contract-to-contract execution.
type Receipt struct {
	ReceiptID     string      `json:"receipt_id"`     // Unique receipt identifier
	PredecessorID string      `json:"predecessor_id"` // Account that caused this receipt
	ReceiverID    string      `json:"receiver_id"`    // Account (contract) the receipt is addressed to
	Receipt       ReceiptBody `json:"receipt"`        // Receipt payload, only Action receipts carry actions
}

// ReceiptBody is the enum-style receipt payload. Data receipts are ignored,
// so only the Action variant is decoded.
type ReceiptBody struct {
	Action *ActionReceipt `json:"Action"`
}

// ActionReceipt lists the actions a receipt asks the receiver to execute.
type ActionReceipt struct {
	SignerID string   `json:"signer_id"`
	Actions  []Action `json:"actions"`
}

// Action is a single receipt action. NEAR serializes actions either as a bare
// string (e.g. "CreateAccount") or as a single-key object naming the variant.
// Only FunctionCall actions are relevant here; every other variant decodes to
// the zero Action without error.
type Action struct {
	FunctionCall *FunctionCall
}

// UnmarshalJSON implements the lenient action decoding described on Action.
func (a *Action) UnmarshalJSON(data []byte) error {
	// Bare string variants ("CreateAccount", "DeleteKey", ...) carry no payload.
	if len(data) > 0 && data[0] == '"' {
		return nil
	}

	var variant struct {
		FunctionCall *FunctionCall `json:"FunctionCall"`
	}
	if err := json.Unmarshal(data, &variant); err != nil {
		return err
	}

	a.FunctionCall = variant.FunctionCall
	return nil
}

// FunctionCall is a contract method invocation with base64-encoded arguments.
type FunctionCall struct {
	MethodName string `json:"method_name"` // Contract method being invoked
	Args       string `json:"args"`        // Base64-encoded call arguments
	Gas        uint64 `json:"gas"`         // Gas attached to the call
	Deposit    string `json:"deposit"`     // Yocto-NEAR deposit attached to the call
}

// ExecutionOutcome records the result of executing a receipt.
type ExecutionOutcome struct {
	ID      string  `json:"id"`
	Outcome Outcome `json:"outcome"`
}

// Outcome holds the follow-up receipts produced by an execution.
type Outcome struct {
	ExecutorID string   `json:"executor_id"`
	ReceiptIDs []string `json:"receipt_ids"`
}
