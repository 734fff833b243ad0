package workflow

import (
	"fmt"
	"testing"

	"github.com/desertthunder/visuallab/internal/models"
	"github.com/desertthunder/visuallab/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureFile() *models.FileRef {
	f := models.NewFileRef("/tmp/iris.csv", 128, "text/csv")
	return &f
}

func fixturePreview() *models.DatasetPreview {
	return &models.DatasetPreview{
		Columns: []string{"feature1", "feature2", "feature3", "target"},
		Rows: [][]string{
			{"1.2", "3.4", "2.1", "Class A"},
			{"2.3", "1.4", "3.2", "Class B"},
			{"3.1", "2.7", "1.8", "Class A"},
		},
	}
}

func fixtureStats() *models.DatasetStats {
	return &models.DatasetStats{Rows: 1000, Columns: 4, MissingValues: 23, DataTypes: models.DataTypes{Numeric: 3, Categorical: 1}}
}

func fixtureMetrics() *models.ModelMetrics {
	return &models.ModelMetrics{Accuracy: 0.89, Precision: 0.87, Recall: 0.86, F1: 0.865}
}

func uploaded() State {
	return Upload(New("session"), fixtureFile(), fixturePreview(), fixtureStats())
}

func trained() State {
	s, _ := StartTraining(uploaded())
	return CompleteTraining(s, fixtureMetrics())
}

func TestTabEnablement(t *testing.T) {
	tc := []struct {
		name  string
		state State
		want  map[Tab]bool
	}{
		{
			name:  "empty session",
			state: New("s"),
			want:  map[Tab]bool{TabUpload: true, TabProfiling: false, TabModeling: false, TabDownload: false},
		},
		{
			name:  "file uploaded",
			state: uploaded(),
			want:  map[Tab]bool{TabUpload: true, TabProfiling: true, TabModeling: true, TabDownload: false},
		},
		{
			name:  "model trained",
			state: trained(),
			want:  map[Tab]bool{TabUpload: true, TabProfiling: true, TabModeling: true, TabDownload: true},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			for tab, want := range tt.want {
				assert.Equal(t, want, tt.state.Enabled(tab), "tab %s", tab)
			}
		})
	}

	assert.False(t, New("s").Enabled(Tab(9)))
	assert.Equal(t, []Tab{TabUpload, TabProfiling, TabModeling}, uploaded().EnabledTabs())
}

func TestSelectTab(t *testing.T) {
	t.Run("disabled tab is a no-op", func(t *testing.T) {
		s := New("s")
		for _, tab := range []Tab{TabProfiling, TabModeling, TabDownload, Tab(-1), Tab(7)} {
			assert.Equal(t, s, SelectTab(s, tab))
		}
	})

	t.Run("enabled tab becomes active", func(t *testing.T) {
		s := SelectTab(uploaded(), TabModeling)
		assert.Equal(t, TabModeling, s.ActiveTab)

		s = SelectTab(s, TabDownload)
		assert.Equal(t, TabModeling, s.ActiveTab)

		s = SelectTab(trained(), TabDownload)
		assert.Equal(t, TabDownload, s.ActiveTab)
	})

	t.Run("cycling skips disabled tabs", func(t *testing.T) {
		s := New("s")
		assert.Equal(t, TabUpload, NextTab(s).ActiveTab)

		s = uploaded()
		s = NextTab(s)
		assert.Equal(t, TabProfiling, s.ActiveTab)
		s = NextTab(NextTab(s))
		assert.Equal(t, TabUpload, s.ActiveTab, "download is disabled, so modeling wraps to upload")
		assert.Equal(t, TabModeling, PrevTab(s).ActiveTab)

		s = trained()
		assert.Equal(t, TabDownload, PrevTab(s).ActiveTab)
	})
}

func TestUpload(t *testing.T) {
	t.Run("populates file, preview and stats", func(t *testing.T) {
		s := uploaded()
		require.True(t, s.HasFile())
		assert.Equal(t, "iris.csv", s.File.Name)
		require.NotNil(t, s.Preview)
		assert.Len(t, s.Preview.Columns, 4)
		assert.Len(t, s.Preview.Rows, 3)
		require.NotNil(t, s.Stats)
		assert.Equal(t, 1000, s.Stats.Rows)
		assert.Equal(t, 4, s.Stats.Columns)
		assert.Equal(t, 23, s.Stats.MissingValues)
		require.NotNil(t, s.Notice)
		assert.Equal(t, NoticeSuccess, s.Notice.Kind)
		assert.Contains(t, s.Notice.Message, "iris.csv uploaded successfully")
	})

	t.Run("empty selection leaves state unchanged", func(t *testing.T) {
		s := New("s")
		assert.Equal(t, s, Upload(s, nil, fixturePreview(), fixtureStats()))
		assert.Equal(t, s, Upload(s, &models.FileRef{}, fixturePreview(), fixtureStats()))

		prev := uploaded()
		assert.Equal(t, prev, Upload(prev, nil, nil, nil))
	})

	t.Run("replacement swaps every field", func(t *testing.T) {
		s := uploaded()
		other := models.NewFileRef("/tmp/other.csv", 1, "text/csv")
		stats := &models.DatasetStats{Rows: 5, Columns: 1, DataTypes: models.DataTypes{Numeric: 1}}
		preview := &models.DatasetPreview{Columns: []string{"x"}}

		s = Upload(s, &other, preview, stats)
		assert.Equal(t, "other.csv", s.File.Name)
		assert.Same(t, preview, s.Preview)
		assert.Same(t, stats, s.Stats)
	})

	t.Run("ignored while training", func(t *testing.T) {
		s, ok := StartTraining(uploaded())
		require.True(t, ok)
		other := models.NewFileRef("/tmp/other.csv", 1, "text/csv")
		assert.Equal(t, s, Upload(s, &other, nil, nil))
	})

	t.Run("failure records a notice only", func(t *testing.T) {
		s := uploaded()
		err := fmt.Errorf("%w: file is empty", shared.ErrInvalidFile)
		failed := UploadFailed(s, err)

		assert.Equal(t, s.File, failed.File)
		assert.Equal(t, s.Preview, failed.Preview)
		assert.Equal(t, s.Stats, failed.Stats)
		require.NotNil(t, failed.Notice)
		assert.Equal(t, NoticeError, failed.Notice.Kind)
		assert.ErrorIs(t, failed.Notice.Err, shared.ErrInvalidFile)
		assert.Equal(t, "Invalid file: file is empty", failed.Notice.Message)

		assert.Equal(t, s, UploadFailed(s, nil))
	})
}

func TestTraining(t *testing.T) {
	t.Run("requires a file", func(t *testing.T) {
		s := New("s")
		next, ok := StartTraining(s)
		assert.False(t, ok)
		assert.Equal(t, s, next)
	})

	t.Run("start resets progress", func(t *testing.T) {
		s := uploaded()
		s.Progress = 70
		s, ok := StartTraining(s)
		require.True(t, ok)
		assert.True(t, s.Training)
		assert.Equal(t, 0, s.Progress)
		assert.Equal(t, PhaseTraining, s.Phase)
	})

	t.Run("reentrant start is ignored", func(t *testing.T) {
		s, _ := StartTraining(uploaded())
		s = ApplyProgress(s, 40)
		again, ok := StartTraining(s)
		assert.False(t, ok)
		assert.Equal(t, 40, again.Progress)
	})

	t.Run("progress is monotonic and clamped", func(t *testing.T) {
		s, _ := StartTraining(uploaded())
		seen := []int{}
		for _, p := range []int{10, 30, 20, -5, 60, 140} {
			s = ApplyProgress(s, p)
			seen = append(seen, s.Progress)
		}
		assert.Equal(t, []int{10, 30, 30, 30, 60, 100}, seen)
	})

	t.Run("progress outside training is ignored", func(t *testing.T) {
		s := uploaded()
		assert.Equal(t, 0, ApplyProgress(s, 50).Progress)
	})

	t.Run("completion publishes metrics once", func(t *testing.T) {
		s, _ := StartTraining(uploaded())
		s = ApplyProgress(s, 90)
		s = CompleteTraining(s, fixtureMetrics())

		assert.False(t, s.Training)
		assert.Equal(t, 100, s.Progress)
		assert.Equal(t, PhaseComplete, s.Phase)
		require.NotNil(t, s.Metrics)
		assert.Equal(t, models.ModelMetrics{Accuracy: 0.89, Precision: 0.87, Recall: 0.86, F1: 0.865}, *s.Metrics)
		assert.True(t, s.Enabled(TabDownload))

		again := CompleteTraining(s, &models.ModelMetrics{Accuracy: 0.1})
		assert.Equal(t, 0.89, again.Metrics.Accuracy)
	})

	t.Run("retraining keeps previous metrics until completion", func(t *testing.T) {
		s, ok := StartTraining(trained())
		require.True(t, ok)
		assert.NotNil(t, s.Metrics)
		assert.True(t, s.Enabled(TabDownload))
	})

	t.Run("failure keeps progress and reports", func(t *testing.T) {
		s, _ := StartTraining(uploaded())
		s = ApplyProgress(s, 50)
		s = FailTraining(s, fmt.Errorf("%w: simulated failure at 50%%", shared.ErrTraining))

		assert.False(t, s.Training)
		assert.Equal(t, 50, s.Progress)
		assert.Equal(t, PhaseFailed, s.Phase)
		assert.Nil(t, s.Metrics)
		require.NotNil(t, s.Notice)
		assert.Equal(t, NoticeError, s.Notice.Kind)
		assert.ErrorIs(t, s.Notice.Err, shared.ErrTraining)
	})

	t.Run("cancellation returns to idle", func(t *testing.T) {
		s, _ := StartTraining(uploaded())
		s = FailTraining(s, shared.ErrTrainingCancelled)

		assert.False(t, s.Training)
		assert.Equal(t, PhaseIdle, s.Phase)
		require.NotNil(t, s.Notice)
		assert.Equal(t, NoticeInfo, s.Notice.Kind)
	})

	t.Run("failure outside training is ignored", func(t *testing.T) {
		s := uploaded()
		assert.Equal(t, s, FailTraining(s, shared.ErrTraining))
	})
}

func TestDismissNotice(t *testing.T) {
	s := UploadFailed(New("s"), shared.ErrInvalidFile)
	require.NotNil(t, s.Notice)
	assert.Nil(t, DismissNotice(s).Notice)
}

func TestNotify(t *testing.T) {
	s := Notify(New("s"), NoticeSuccess, "Model saved")
	require.NotNil(t, s.Notice)
	assert.Equal(t, NoticeSuccess, s.Notice.Kind)
	assert.Equal(t, "Model saved", s.Notice.Message)

	s = NotifyError(s, fmt.Errorf("%w: disk full", shared.ErrInvalidInput))
	require.NotNil(t, s.Notice)
	assert.Equal(t, NoticeError, s.Notice.Kind)
	assert.ErrorIs(t, s.Notice.Err, shared.ErrInvalidInput)

	assert.Equal(t, s, NotifyError(s, nil))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "modeling", TabModeling.String())
	assert.Equal(t, "Download", TabDownload.Title())
	assert.Equal(t, "", Tab(12).Title())
	assert.Equal(t, "complete", PhaseComplete.String())
}
