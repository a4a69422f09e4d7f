package biz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kart-io/wizora/internal/pkg/inference"
	"github.com/kart-io/wizora/pkg/infra/pool"
	"github.com/kart-io/wizora/pkg/llm"
	apierrors "github.com/kart-io/wizora/pkg/utils/errors"
)

// recordingGenerator answers every prompt and records what it was asked.
type recordingGenerator struct {
	mu        sync.Mutex
	prompts   []string
	maxTokens []int
	failOn    string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.maxTokens = append(g.maxTokens, llm.ApplyGenerateOptions(opts...).MaxTokens)
	if g.failOn != "" && strings.Contains(prompt, g.failOn) {
		return "", errors.New("model exploded")
	}
	if strings.HasPrefix(prompt, finalPromptHead) {
		return "FINAL", nil
	}
	// 用分块的第一行数据标识摘要，便于检查顺序
	lines := strings.Split(prompt, "\n")
	return "summary of " + strings.TrimSpace(lines[3]), nil
}

func buildCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("id,region,sales\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&buf, "%d,r%d,%d\n", i, i%3, i*10)
	}
	return buf.Bytes()
}

func TestAnalyzeChunksAndMergesInOrder(t *testing.T) {
	table, err := ParseTable("data.csv", "text/csv", buildCSV(45))
	require.NoError(t, err)
	require.Len(t, table.Rows, 45)

	gen := &recordingGenerator{}
	svc := NewService(gen, Config{ChunkSize: 20, ChunkMaxTokens: 150, FinalMaxTokens: 200})

	out, err := svc.Analyze(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, "FINAL", out)

	// 3 个分块摘要 + 1 个最终摘要
	require.Len(t, gen.prompts, 4)
	final := gen.prompts[3]
	assert.True(t, strings.HasPrefix(final, finalPromptHead))
	assert.Equal(t, 200, gen.maxTokens[3])
	for _, n := range gen.maxTokens[:3] {
		assert.Equal(t, 150, n)
	}

	i1 := strings.Index(final, "summary of 1 ")
	i21 := strings.Index(final, "summary of 21 ")
	i41 := strings.Index(final, "summary of 41 ")
	require.True(t, i1 >= 0 && i21 >= 0 && i41 >= 0, final)
	assert.Less(t, i1, i21)
	assert.Less(t, i21, i41)
	assert.True(t, strings.HasSuffix(final, finalPromptTail))
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		gen   *recordingGenerator
		want  *apierrors.Errno
		calls int
	}{
		{"只有表头", []byte("a,b\n"), &recordingGenerator{}, apierrors.ErrCSVEmpty, 0},
		{"空文件", []byte(""), &recordingGenerator{}, apierrors.ErrCSVEmpty, 0},
		{"分块摘要失败", buildCSV(5), &recordingGenerator{failOn: "dataset chunk"}, apierrors.ErrCSVInsight, 1},
		{"最终摘要失败", buildCSV(5), &recordingGenerator{failOn: "final overall"}, apierrors.ErrCSVInsight, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseTable("x.csv", "", tt.data)
			require.NoError(t, err)

			_, err = NewService(tt.gen, Config{ChunkSize: 20, ChunkMaxTokens: 1, FinalMaxTokens: 1}).Analyze(context.Background(), table)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, tt.gen.prompts, tt.calls)
		})
	}
}

// slowProvider records the peak number of concurrent calls.
type slowProvider struct {
	calls, inFlight, peak atomic.Int64
}

func (p *slowProvider) Name() string { return "slow" }

func (p *slowProvider) Generate(_ context.Context, prompt string, _ ...llm.GenerateOption) (string, error) {
	p.calls.Add(1)
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	return "ok", nil
}

func TestAnalyzeLargeTableStaysWithinPool(t *testing.T) {
	// 300 个分块远超池容量加等待队列
	p, err := pool.NewPool("insights-test", &pool.Config{
		Capacity:         2,
		ExpiryDuration:   time.Second,
		MaxBlockingTasks: 2,
	})
	require.NoError(t, err)
	t.Cleanup(p.Release)

	provider := &slowProvider{}
	runner := inference.NewRunner(p, provider)

	table, err := ParseTable("big.csv", "text/csv", buildCSV(6000))
	require.NoError(t, err)

	out, err := NewService(runner, Config{ChunkSize: 20, ChunkMaxTokens: 1, FinalMaxTokens: 1, Concurrency: 2}).
		Analyze(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int64(301), provider.calls.Load())
	assert.LessOrEqual(t, provider.peak.Load(), int64(2))
}

func TestAnalyzeRowLimit(t *testing.T) {
	table, err := ParseTable("x.csv", "", buildCSV(30))
	require.NoError(t, err)

	_, err = NewService(&recordingGenerator{}, Config{ChunkSize: 20, MaxRows: 10}).Analyze(context.Background(), table)
	assert.ErrorIs(t, err, apierrors.ErrCSVParse)
}

func TestParseTableCSV(t *testing.T) {
	data := []byte("\xef\xbb\xbfname,score\nalice,1\n\nbob\n,\n")
	table, err := ParseTable("s.csv", "text/csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score"}, table.Header)
	assert.Equal(t, [][]string{{"alice", "1"}, {"bob", ""}}, table.Rows)
}

func TestParseTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"city", "temp"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Oslo", 3}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Rome", 18}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ParseTable("weather.xlsx", "application/octet-stream", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "temp"}, table.Header)
	assert.Equal(t, [][]string{{"Oslo", "3"}, {"Rome", "18"}}, table.Rows)

	_, err = ParseTable("broken.xlsx", "", []byte("not a workbook"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out := Render([]string{"id", "name"}, [][]string{{"1", "alice"}, {"22", "bob  smith"}})
	assert.Equal(t, "id  name\n1   alice\n22  bob smith", out)

	// 末尾空单元格不留行尾空格
	out = Render([]string{"id", "note"}, [][]string{{"1", ""}, {"2", "ok"}})
	assert.Equal(t, "id  note\n1\n2   ok", out)
}

func TestIsXLSX(t *testing.T) {
	assert.True(t, IsXLSX("a.XLSX", ""))
	assert.True(t, IsXLSX("upload", xlsxType))
	assert.False(t, IsXLSX("a.csv", "text/csv"))
}
