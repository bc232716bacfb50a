package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/types"
	"github.com/smartpick/picklist/internal/validation"
)

const ordersCSV = `受注番号,GoQ管理番号,配送方法(複数配送先),チェック項目,送付先氏名,商品名,個数,商品SKU
O1,G1,ネコポス,午前中,山田,商品A,2,SKU-A
O2,G2,ネコポス,,佐藤,商品B,1,SKU-B
O3,G2,ネコポス,,佐藤,不明,1,SKU-X
`

func testMaster() types.MasterTable {
	row := func(sku, jan, setCount, name string) []string {
		r := make([]string, 23)
		r[5], r[6], r[16], r[17] = jan, setCount, sku, name
		return r
	}
	header := make([]string, 23)
	header[5], header[6], header[16], header[17] = "JAN", "SET数", "商品SKU", "親"
	header[7], header[8], header[9] = "親ASIN-2", "親JAN-2", "SET-2"
	header[21], header[22] = "引継ぎ元", "引継ぎ先"
	header[4], header[10] = "親ASIN", "子ASIN"

	return types.MasterTable{
		header,
		row("SKU-A", "4900000000011", "", "A商品"),
		row("SKU-B", "4900000000028", "3", "B商品"),
	}
}

type fixture struct {
	cfg     *config.MainConfig
	profile *config.ProfileConfig
	input   string
}

func newFixture(t *testing.T, content string) fixture {
	root := t.TempDir()
	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "input_archive")
	cfg.OutputArchiveDir = filepath.Join(root, "output_archive")
	cfg.OutputFormats = []string{"xlsx", "xml"}
	cfg.OutputNameFormat = "picking_{profile}_{source}"
	require.NoError(t, cfg.EnsureDirectories())

	profile := config.DefaultProfile()
	profile.CSVSettings.Encoding = "UTF-8"

	input := filepath.Join(cfg.InputDir, "orders.csv")
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))
	return fixture{cfg: cfg, profile: profile, input: input}
}

func TestAnalyze(t *testing.T) {
	fx := newFixture(t, ordersCSV)

	a, err := New(fx.input, fx.profile, fx.cfg, testMaster()).Analyze(context.Background())
	require.NoError(t, err)

	assert.Len(t, a.Items, 3)
	assert.Equal(t, 2, a.Summary.OrderCount)
	assert.Equal(t, []string{"午前中"}, a.Summary.ShippingNotes)
	assert.Equal(t, 5, a.Result.TotalSingleUnits)
	assert.Equal(t, 1, a.Result.ExcludedCount)
	assert.True(t, a.Validation.IsValid)
	assert.Equal(t, 1, a.Validation.WarningCount)
}

func TestRun(t *testing.T) {
	fx := newFixture(t, ordersCSV)
	core, logs := observer.New(zapcore.InfoLevel)

	res := New(fx.input, fx.profile, fx.cfg, testMaster(), WithLogger(zap.New(core))).Run(context.Background())

	require.NoError(t, res.Error)
	assert.True(t, res.Success)
	assert.Equal(t, "goq", res.Profile)
	assert.Equal(t, []string{
		filepath.Join(fx.cfg.OutputDir, "picking_goq_orders.xlsx"),
		filepath.Join(fx.cfg.OutputDir, "picking_goq_orders.xml"),
	}, res.OutputFiles)
	for _, out := range res.OutputFiles {
		assert.FileExists(t, out)
		assert.FileExists(t, filepath.Join(fx.cfg.OutputArchiveDir, filepath.Base(out)))
	}

	assert.Equal(t, filepath.Join(fx.cfg.OutputDir, "orders_validation.txt"), res.ErrorLog)
	assert.FileExists(t, res.ErrorLog)

	assert.NoFileExists(t, fx.input)
	assert.Equal(t, filepath.Join(fx.cfg.InputArchiveDir, "orders.csv"), res.ArchivePath)

	assert.Equal(t, ProcessingStats{
		Lines:              3,
		PickingRows:        2,
		SingleUnits:        5,
		ExcludedLines:      1,
		MultiQuantityLines: 1,
		Findings:           1,
		ProcessingTime:     res.Stats.ProcessingTime,
	}, res.Stats)
	assert.Positive(t, res.Stats.ProcessingTime)

	assert.Equal(t, 2, logs.FilterMessage("wrote output").Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "orders.csv", entry.ContextMap()["file"])
	}

	xmlData, err := os.ReadFile(res.OutputFiles[1])
	require.NoError(t, err)
	// sorted by name: A商品 before B商品
	assert.Less(t, strings.Index(string(xmlData), "A商品"), strings.Index(string(xmlData), "B商品"))
}

func TestRunDryRun(t *testing.T) {
	fx := newFixture(t, ordersCSV)

	res := New(fx.input, fx.profile, fx.cfg, testMaster(), WithDryRun(true)).Run(context.Background())

	require.NoError(t, res.Error)
	assert.True(t, res.Success)
	assert.Empty(t, res.OutputFiles)
	assert.Empty(t, res.ErrorLog)
	assert.FileExists(t, fx.input)
	require.NotNil(t, res.Validation)
	assert.Equal(t, 5, res.Stats.SingleUnits)

	entries, err := os.ReadDir(fx.cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunStopsOnValidationErrors(t *testing.T) {
	fx := newFixture(t, "受注番号,個数,商品SKU\nO1,1,NOPE\n")
	fx.cfg.ContinueOnError = false

	res := New(fx.input, fx.profile, fx.cfg, testMaster()).Run(context.Background())

	require.Error(t, res.Error)
	assert.False(t, res.Success)
	assert.Empty(t, res.OutputFiles)
	assert.FileExists(t, fx.input)
	assert.FileExists(t, res.ErrorLog)
	assert.Equal(t, 1, res.Validation.ErrorCount)
	assert.Equal(t, validation.RuleNothingToPick, res.Validation.Errors[len(res.Validation.Errors)-1].Rule)
}

func TestRunContinuesOnValidationErrors(t *testing.T) {
	fx := newFixture(t, "受注番号,個数,商品SKU\nO1,1,NOPE\n")

	res := New(fx.input, fx.profile, fx.cfg, testMaster()).Run(context.Background())

	require.NoError(t, res.Error)
	assert.True(t, res.Success)
	assert.Len(t, res.OutputFiles, 2)
	assert.False(t, res.Validation.IsValid)
}

func TestRunFailures(t *testing.T) {
	fx := newFixture(t, ordersCSV)

	res := New(filepath.Join(fx.cfg.InputDir, "missing.csv"), fx.profile, fx.cfg, testMaster()).Run(context.Background())
	assert.Error(t, res.Error)
	assert.False(t, res.Success)

	bad := *fx.profile
	bad.NormalizationRules = []config.NormalizationRule{{Field: "nope", Actions: []config.NormalizationAction{{Type: "trim"}}}}
	res = New(fx.input, &bad, fx.cfg, testMaster()).Run(context.Background())
	assert.Error(t, res.Error)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = New(fx.input, fx.profile, fx.cfg, testMaster()).Run(ctx)
	assert.ErrorIs(t, res.Error, context.Canceled)
	assert.FileExists(t, fx.input)

	fx.cfg.OutputFormats = []string{"pdf"}
	res = New(fx.input, fx.profile, fx.cfg, testMaster()).Run(context.Background())
	assert.Error(t, res.Error)
	assert.FileExists(t, fx.input)
}
