package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ronin/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ronin/internal/catalogue"
	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/services"
)

type mockAnalysisService struct {
	result *domain.AnalysisResult
	err    error
	ctx    context.Context
}

func (m *mockAnalysisService) Analyze(ctx context.Context) (*domain.AnalysisResult, error) {
	m.ctx = ctx
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func testAnalysisResult() *domain.AnalysisResult {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &domain.AnalysisResult{
		RunID: "run-1",
		Narratives: []domain.Narrative{
			{
				ID:         "ai-agents",
				Title:      "AI Agents on Solana",
				Summary:    "Autonomous agents...",
				Confidence: 88,
				Trend:      domain.TrendAccelerating,
				Category:   "AI",
				DetectedAt: at,
				Signals: []domain.Signal{
					{Source: domain.SourceGitHub, Title: "AI Agents repos", Strength: 72},
				},
				BuildIdeas: []domain.BuildIdea{
					{Title: "Agent wallet", Feasibility: domain.FeasibilityHigh, EstimatedEffort: "2-3 weeks"},
				},
			},
			{
				ID:         "depin-growth",
				Title:      "DePIN Expansion",
				Summary:    "Physical networks...",
				Confidence: 55,
				Trend:      domain.TrendEmerging,
				Category:   "DePIN",
				DetectedAt: at,
			},
		},
		TotalSignals:    14,
		DataSourcesUsed: []string{"DeFi Llama", "Solana RPC", "GitHub"},
		AnalyzedAt:      at,
		AgentVersion:    domain.AgentVersion,
	}
}

// setupTestServices injects mock analysis, the built-in catalogue and an
// in-memory settings service, and returns a restore function.
func setupTestServices() func() {
	oldAnalysis, oldCatalogue, oldSettings, oldHistory := analysisService, catalogueService, settingsService, historyService

	settings := services.NewSettingsService(memory.NewConfigStore()).
		WithEnv(func(string) (string, bool) { return "", false })

	SetServices(Services{
		Analysis:  &mockAnalysisService{result: testAnalysisResult()},
		Catalogue: services.NewCatalogueService(catalogue.Builtin()),
		Settings:  settings,
	})

	return func() {
		analysisService, catalogueService, settingsService = oldAnalysis, oldCatalogue, oldSettings
		historyService = oldHistory
	}
}

// execute runs the root command with args and resets flag state afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		analyzeJSON = false
		analyzeTimeout = 30 * time.Second
		analyzeMinConfidence = 0
		analyzeLimit = 0
		patternsJSON = false
		serveAddr = ""
		historyJSON = false
		historyLimit = 20
		watchInterval = 15 * time.Minute
		watchCount = 0
		watchJSON = false
		verbose = false
		noConfig = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "no-config", "config-dir", "env-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"analyze", "patterns", "serve", "mcp", "tui", "settings", "version", "history", "watch"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSetServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	assert.NotNil(t, analysisService)
	assert.NotNil(t, catalogueService)
	assert.NotNil(t, settingsService)
}

func TestWire_NoConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	svc, closer, err := wire(context.Background(), wireOptions{noConfig: true})

	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer())
	assert.NotNil(t, svc.Analysis)
	assert.Nil(t, svc.History, "no-config runs keep no history")
	assert.Len(t, svc.Catalogue.List(), catalogue.Builtin().Len())
	assert.Equal(t, memoryConfigPath, svc.Settings.ConfigPath())
}

func TestWire_ConfigDir(t *testing.T) {
	dir := t.TempDir()

	svc, closer, err := wire(context.Background(), wireOptions{configDir: dir})

	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, closer()) })
	assert.Contains(t, svc.Settings.ConfigPath(), dir)
	assert.Nil(t, svc.History, "history is opt-in")
	assert.NoFileExists(t, filepath.Join(dir, sqlite.DBFile))
}

func TestWire_HistoryEnabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[history]\nenabled = true\n"), 0o600))

	svc, closer, err := wire(context.Background(), wireOptions{configDir: dir})

	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, closer()) })
	require.NotNil(t, svc.History)

	runs, err := svc.History.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.FileExists(t, filepath.Join(dir, sqlite.DBFile))
}

func TestWire_BadPatternsFile(t *testing.T) {
	t.Setenv("RONIN_PATTERNS_FILE", "/nonexistent/patterns.toml")

	_, _, err := wire(context.Background(), wireOptions{noConfig: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load patterns")
}

func TestSetup_WiresMissingServices(t *testing.T) {
	oldAnalysis, oldCatalogue, oldSettings, oldHistory := analysisService, catalogueService, settingsService, historyService
	defer func() {
		analysisService, catalogueService, settingsService = oldAnalysis, oldCatalogue, oldSettings
		historyService = oldHistory
		releaseWired()
	}()
	SetServices(Services{})
	t.Setenv("GITHUB_TOKEN", "")

	out, err := execute(t, "--no-config", "--env-file", "", "patterns")

	require.NoError(t, err)
	assert.Contains(t, out, "ai-agents")
	assert.NotNil(t, analysisService)
}

func TestSetVersion(t *testing.T) {
	old := version
	defer func() { version = old }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}

func TestMockAnalysisService_Error(t *testing.T) {
	m := &mockAnalysisService{err: errors.New("boom")}

	_, err := m.Analyze(context.Background())

	assert.EqualError(t, err, "boom")
}

func TestWire_PatternsFileReloads(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	path := filepath.Join(t.TempDir(), "patterns.toml")
	one := "[[patterns]]\nid = \"restaking\"\ntitle = \"Restaking\"\nkeywords = [\"restaking\"]\nmin_signals = 1\n"
	two := one + "\n[[patterns]]\nid = \"payments\"\ntitle = \"Payments\"\nkeywords = [\"pay\"]\nmin_signals = 1\n"
	require.NoError(t, os.WriteFile(path, []byte(one), 0o600))
	t.Setenv("RONIN_PATTERNS_FILE", path)

	svc, closer, err := wire(context.Background(), wireOptions{noConfig: true})
	require.NoError(t, err)
	defer closer()
	require.NotNil(t, svc.patterns)
	assert.Len(t, svc.Catalogue.List(), 1)

	old := livePatterns
	livePatterns = svc.patterns
	defer func() { livePatterns = old }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchPatterns(ctx)

	require.NoError(t, os.WriteFile(path, []byte(two), 0o600))
	require.Eventually(t, func() bool { return len(svc.Catalogue.List()) == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchPatterns_BuiltinIsNoop(t *testing.T) {
	old := livePatterns
	livePatterns = nil
	defer func() { livePatterns = old }()

	assert.NotPanics(t, func() { watchPatterns(context.Background()) })
}
