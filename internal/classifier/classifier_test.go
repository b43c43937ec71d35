package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docparse/constants"
	"docparse/internal/common"
)

func trainingCorpus(perClass int) []TrainingSample {
	var samples []TrainingSample
	for i := 0; i < perClass; i++ {
		samples = append(samples,
			TrainingSample{
				Text:         fmt.Sprintf("INVOICE #INV-%d Bill To: Customer Total: $%d.00 Tax: $%d.00 Due Date: 04/0%d/2023", 1000+i, 100+i, 10+i, i%9+1),
				DocumentType: constants.Invoice,
			},
			TrainingSample{
				Text:         fmt.Sprintf("Receipt #%d Date: 03/1%d/2023 Total: $%d.25 Payment: Credit Card thank you for shopping", 2000+i, i%9, 7+i),
				DocumentType: constants.Receipt,
			},
			TrainingSample{
				Text:         fmt.Sprintf("Contact: John Smith Email: john.smith%d@example.com Phone: +1-555-010%d website www.example.com", i, i%9),
				DocumentType: constants.Contact,
			},
		)
	}
	return samples
}

func TestPredictUntrained(t *testing.T) {
	c := New(100, nil)
	_, err := c.Predict("Invoice #INV-1 Total: $5.00")
	assert.ErrorIs(t, err, common.ErrUntrained)
	assert.False(t, c.IsTrained())
}

func TestTrainEmptyCorpusLeavesStateUnchanged(t *testing.T) {
	c := New(100, nil)
	err := c.Train(nil)
	assert.ErrorIs(t, err, common.ErrEmptyCorpus)
	assert.False(t, c.IsTrained())
	assert.Empty(t, c.Info().History)

	err = c.Train([]TrainingSample{{Text: "", DocumentType: constants.Invoice}})
	assert.ErrorIs(t, err, common.ErrEmptyCorpus)
	assert.False(t, c.IsTrained())
}

func TestTrainAndPredict(t *testing.T) {
	c := New(500, nil)
	require.NoError(t, c.Train(trainingCorpus(20)))
	require.True(t, c.IsTrained())

	pred, err := c.Predict("INVOICE #INV-9999 Bill To: Someone Total: $42.00 Tax: $4.20")
	require.NoError(t, err)
	assert.Equal(t, constants.Invoice, pred)

	pred, err = c.Predict("Contact: Jane Doe Email: jane@example.com Phone: +1-555-0100")
	require.NoError(t, err)
	assert.Equal(t, constants.Contact, pred)
}

func TestPredictStaysInsideLabelSpace(t *testing.T) {
	c := New(500, nil)
	require.NoError(t, c.Train(trainingCorpus(10)))

	labelSet := map[string]struct{}{}
	for _, l := range c.Labels() {
		labelSet[l] = struct{}{}
	}

	probes := []string{
		"totally unrelated text about gardening and the weather",
		"", // all terms out of vocabulary
		"Contract agreement between parties for 5 years",
	}
	for _, probe := range probes {
		pred, err := c.Predict(probe)
		require.NoError(t, err)
		_, ok := labelSet[string(pred)]
		assert.True(t, ok, "prediction %q outside label space", pred)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gob")

	c := New(500, nil)
	require.NoError(t, c.Train(trainingCorpus(15)))
	require.NoError(t, c.Save(path))

	probes := []string{
		"INVOICE #INV-77 Total: $10.00 Tax: $1.00",
		"Receipt #5 Total: $3.25 Payment: Cash",
		"Contact: Amy Pond Email: amy@example.com",
	}
	var before []constants.DocumentType
	for _, p := range probes {
		pred, err := c.Predict(p)
		require.NoError(t, err)
		before = append(before, pred)
	}

	restored := New(500, nil)
	require.NoError(t, restored.Load(path))
	require.True(t, restored.IsTrained())
	assert.Equal(t, c.Labels(), restored.Labels())
	assert.Equal(t, c.Info().History, restored.Info().History)

	for i, p := range probes {
		pred, err := restored.Predict(p)
		require.NoError(t, err)
		assert.Equal(t, before[i], pred)
	}
}

func TestSaveUntrained(t *testing.T) {
	c := New(100, nil)
	err := c.Save(filepath.Join(t.TempDir(), "model.gob"))
	assert.ErrorIs(t, err, common.ErrUntrained)
}

func TestLoadMissingArtifactResetsUntrained(t *testing.T) {
	c := New(500, nil)
	require.NoError(t, c.Train(trainingCorpus(10)))
	require.True(t, c.IsTrained())

	err := c.Load(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
	assert.False(t, c.IsTrained(), "failed load must reset to fresh untrained state")
}

func TestLoadCorruptArtifactResetsUntrained(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob artifact"), 0o644))

	c := New(500, nil)
	err := c.Load(path)
	assert.Error(t, err)
	assert.False(t, c.IsTrained())
}

func TestTrainingHistoryGrowth(t *testing.T) {
	c := New(500, nil)

	require.NoError(t, c.Train(trainingCorpus(10))) // 30 samples
	require.NoError(t, c.Train(trainingCorpus(5)))  // 15 samples

	info := c.Info()
	require.Len(t, info.History, 2)
	assert.Equal(t, 30, info.History[0].SampleCount)
	assert.Equal(t, 15, info.History[1].SampleCount)
	assert.Equal(t, 15, info.SampleCount)
	assert.False(t, info.History[1].Timestamp.Before(info.History[0].Timestamp))
}

func TestTrainSmallCorpusStillTrains(t *testing.T) {
	c := New(100, nil)
	samples := []TrainingSample{
		{Text: "Invoice total tax amount due", DocumentType: constants.Invoice},
		{Text: "Invoice number and billing total", DocumentType: constants.Invoice},
		{Text: "Receipt payment cash total thanks", DocumentType: constants.Receipt},
		{Text: "Receipt purchase payment card", DocumentType: constants.Receipt},
	}
	require.NoError(t, c.Train(samples))
	assert.True(t, c.IsTrained())
}
