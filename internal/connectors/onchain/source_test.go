package onchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/connectors/httpjson"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

const chainsJSON = `[
	{"name":"Ethereum","tvl":60000000000},
	{"name":"Solana","tvl":9100000000}
]`

const protocolsJSON = `[
	{"name":"Jito","category":"Liquid Staking","chains":["Solana"],"tvl":2500000000,"change_1d":0.4,"change_7d":12.5},
	{"name":"Kamino","category":"Lending","chains":["Solana"],"tvl":1800000000,"change_1d":-1.2,"change_7d":-3.0},
	{"name":"Aave","category":"Lending","chains":["Ethereum"],"tvl":20000000000,"change_1d":0,"change_7d":30},
	{"name":"Tiny","category":"Dexes","chains":["Solana"],"tvl":500000,"change_1d":0,"change_7d":80},
	{"name":"NewFarm","category":"Yield","chains":["Solana"],"tvl":3000000,"change_1d":null,"change_7d":null}
]`

type rpcHandler struct {
	slotErr bool
}

func (h rpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	switch req.Method {
	case "getSlot":
		if h.slotErr {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"` + req.ID + `","error":{"code":-32005,"message":"node is behind"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"` + req.ID + `","result":312456789}`))
	case "getRecentPerformanceSamples":
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"` + req.ID + `","result":[{"slot":312456700,"numTransactions":240000,"numSlots":150,"samplePeriodSecs":60}]}`))
	default:
		http.Error(w, "unknown method", http.StatusBadRequest)
	}
}

func newTestServer(t *testing.T, llama http.Handler, rpc http.Handler) (*httptest.Server, *httptest.Server) {
	t.Helper()
	llamaSrv := httptest.NewServer(llama)
	rpcSrv := httptest.NewServer(rpc)
	t.Cleanup(func() {
		llamaSrv.Close()
		rpcSrv.Close()
	})
	return llamaSrv, rpcSrv
}

func llamaMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/chains", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chainsJSON))
	})
	mux.HandleFunc("/protocols", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(protocolsJSON))
	})
	return mux
}

func newTestSource(llamaURL, rpcURL string) *Source {
	fetcher := httpjson.New(httpjson.Config{Rate: 1000})
	src := New(fetcher, Config{DefiLlamaURL: llamaURL, RPCURL: rpcURL, MinProtocolTVL: 1_000_000})
	src.now = func() time.Time { return testNow }
	return src
}

func TestSource_KindAndLabels(t *testing.T) {
	src := New(nil, Config{})

	assert.Equal(t, domain.SourceOnChain, src.Kind())
	assert.Equal(t, []string{"DeFi Llama", "Solana RPC"}, src.Labels())
	assert.Equal(t, domain.DefaultDefiLlamaURL, src.defiLlamaURL)
	assert.Equal(t, domain.DefaultSolanaRPCURL, src.rpcURL)
}

func TestSource_Collect(t *testing.T) {
	llama, rpc := newTestServer(t, llamaMux(), rpcHandler{})
	src := newTestSource(llama.URL+"/", rpc.URL)

	signals := src.Collect(context.Background())

	require.Len(t, signals, 3)

	tvl := signals[0]
	assert.Equal(t, "Solana Total Value Locked", tvl.Title)
	assert.Equal(t, "DeFi", tvl.Category)
	assert.Equal(t, "Solana ecosystem holds $9.10B in TVL across 3+ protocols.", tvl.Description)
	assert.Equal(t, 91.0, tvl.Strength)
	assert.Equal(t, testNow, tvl.Timestamp)
	assert.Equal(t, "$9.10B", tvl.DataPoints[0].Value)

	jito := signals[1]
	assert.Equal(t, "Jito TVL growing", jito.Title)
	assert.Equal(t, "Liquid Staking", jito.Category)
	assert.Equal(t, 25.0, jito.Strength)
	assert.Equal(t, "+12.5% (7d)", jito.DataPoints[0].Change)

	tps := signals[2]
	assert.Equal(t, "Solana Network Throughput", tps.Title)
	assert.Equal(t, "Solana processing ~4,000 TPS at slot 312,456,789 (epoch 723).", tps.Description)
	assert.Equal(t, 80.0, tps.Strength)
	assert.EqualValues(t, 4000, tps.DataPoints[0].Value)

	for _, s := range signals {
		assert.Equal(t, domain.SourceOnChain, s.Source)
	}
}

func TestSource_Collect_RPCErrorKeepsDefiLlama(t *testing.T) {
	llama, rpc := newTestServer(t, llamaMux(), rpcHandler{slotErr: true})
	src := newTestSource(llama.URL, rpc.URL)

	signals := src.Collect(context.Background())

	require.Len(t, signals, 2)
	for _, s := range signals {
		assert.NotEqual(t, "Solana Network Throughput", s.Title)
	}
}

func TestSource_Collect_DefiLlamaDownKeepsRPC(t *testing.T) {
	down := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	llama, rpc := newTestServer(t, down, rpcHandler{})
	src := newTestSource(llama.URL, rpc.URL)

	signals := src.Collect(context.Background())

	require.Len(t, signals, 1)
	assert.Equal(t, "Infrastructure", signals[0].Category)
}

func TestSource_Collect_EverythingDown(t *testing.T) {
	down := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	llama, rpc := newTestServer(t, down, down)
	src := newTestSource(llama.URL, rpc.URL)

	assert.Empty(t, src.Collect(context.Background()))
}
