package onchain

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// slotsPerEpoch is the mainnet epoch length.
const slotsPerEpoch = 432_000

// rpcRequest is a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type slotResponse struct {
	Result uint64    `json:"result"`
	Error  *rpcError `json:"error"`
}

type perfSample struct {
	Slot             uint64 `json:"slot"`
	NumTransactions  uint64 `json:"numTransactions"`
	NumSlots         uint64 `json:"numSlots"`
	SamplePeriodSecs uint64 `json:"samplePeriodSecs"`
}

type perfResponse struct {
	Result []perfSample `json:"result"`
	Error  *rpcError    `json:"error"`
}

// chainStats is the network snapshot derived from RPC.
type chainStats struct {
	Slot  uint64
	Epoch uint64
	TPS   int64
}

func newRPCRequest(method string, params ...any) rpcRequest {
	return rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}
}

func (s *Source) fetchSlot(ctx context.Context) (uint64, error) {
	var resp slotResponse
	if err := s.client.PostJSON(ctx, s.rpcURL, newRPCRequest("getSlot"), &resp); err != nil {
		return 0, fmt.Errorf("rpc getSlot: %w", err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf("rpc getSlot: %d %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

// fetchTPS returns transactions per second from the latest performance sample.
func (s *Source) fetchTPS(ctx context.Context) (int64, error) {
	var resp perfResponse
	if err := s.client.PostJSON(ctx, s.rpcURL, newRPCRequest("getRecentPerformanceSamples", 1), &resp); err != nil {
		return 0, fmt.Errorf("rpc getRecentPerformanceSamples: %w", err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf("rpc getRecentPerformanceSamples: %d %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Result) == 0 || resp.Result[0].SamplePeriodSecs == 0 {
		return 0, nil
	}
	sample := resp.Result[0]
	return int64(math.Round(float64(sample.NumTransactions) / float64(sample.SamplePeriodSecs))), nil
}
