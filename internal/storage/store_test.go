package storage_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/onestep/internal/model"
	"github.com/sandeepkv93/onestep/internal/storage"
)

func newBackends(t *testing.T) map[string]storage.KV {
	t.Helper()
	sq, err := storage.OpenSQLite(context.Background(), storage.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "nested", "onestep.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]storage.KV{
		"memory": storage.NewMemoryKV(),
		"sqlite": sq,
	}
}

func fixtureTask(now time.Time) model.Task {
	done := now.Add(-time.Minute)
	stuck := now.Add(-30 * time.Second)
	return model.Task{
		ID:               "task-1",
		Title:            "Email my manager",
		Description:      "Email my manager",
		EnergyLevel:      model.EnergyMedium,
		EstimatedMinutes: 20,
		Steps: []model.TaskStep{
			{ID: "s1", Description: "Open email/messaging app", IsComplete: true, CompletedAt: &done},
			{ID: "s2", Description: "Click compose or new message", StuckAt: &stuck, SimplifiedDescription: "Click compose"},
		},
		CreatedAt:  now.Add(-time.Hour),
		StuckCount: 1,
	}
}

func fixtureSession(now time.Time) model.Session {
	resumed := now.Add(-5 * time.Minute)
	s := model.NewSession("sess-1", "task-1", now.Add(-time.Hour), 1)
	s.Pauses = []model.SessionPause{{StartedAt: now.Add(-10 * time.Minute), ResumedAt: &resumed, Reason: model.PauseUser}}
	s.EmotionCheckins = []model.EmotionCheckin{{Timestamp: now, Emotion: model.EmotionFocused}}
	s.ElapsedMinutes = 12
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.FixedZone("X", 3600))

	for name, kv := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, err := storage.NewStore(storage.StoreConfig{KV: kv})
			require.NoError(t, err)

			profile := model.NewProfile("p1", model.NeuroADHD, model.MotivationFriendly, model.DefaultPreferences(), now)
			tasks := []model.Task{fixtureTask(now)}
			sessions := []model.Session{fixtureSession(now)}
			wins := []model.MicroWin{model.NewMicroWin("w1", model.WinStepComplete, "task-1", now)}
			patterns := model.RecordStuck(nil, "task-1", "Click compose or new message", "Take a breath", now)

			require.NoError(t, store.SaveProfile(ctx, profile))
			require.NoError(t, store.SaveTasks(ctx, tasks))
			require.NoError(t, store.SaveSessions(ctx, sessions))
			require.NoError(t, store.SaveMicroWins(ctx, wins))
			require.NoError(t, store.SaveStuckPatterns(ctx, patterns))

			gotProfile, err := store.GetProfile(ctx)
			require.NoError(t, err)
			require.NotNil(t, gotProfile)
			if diff := cmp.Diff(profile, *gotProfile); diff != "" {
				t.Fatalf("profile mismatch (-want +got):\n%s", diff)
			}

			gotTasks, err := store.GetTasks(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(tasks, gotTasks, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("tasks mismatch (-want +got):\n%s", diff)
			}

			gotSessions, err := store.GetSessions(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(sessions, gotSessions, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("sessions mismatch (-want +got):\n%s", diff)
			}

			gotWins, err := store.GetMicroWins(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(wins, gotWins); diff != "" {
				t.Fatalf("wins mismatch (-want +got):\n%s", diff)
			}

			gotPatterns, err := store.GetStuckPatterns(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(patterns, gotPatterns); diff != "" {
				t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreDatesAreRevived(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewStore(storage.StoreConfig{KV: storage.NewMemoryKV()})
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.SaveTasks(ctx, []model.Task{fixtureTask(now)}))

	got, err := store.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CreatedAt.Equal(now.Add(-time.Hour)))
	require.NotNil(t, got[0].Steps[0].CompletedAt)
	assert.True(t, got[0].Steps[0].CompletedAt.Equal(now.Add(-time.Minute)))
	assert.Nil(t, got[0].CompletedAt)
}

func TestStoreEmptyDefaults(t *testing.T) {
	for name, kv := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, err := storage.NewStore(storage.StoreConfig{KV: kv})
			require.NoError(t, err)

			p, err := store.GetProfile(ctx)
			require.NoError(t, err)
			assert.Nil(t, p)

			tasks, err := store.GetTasks(ctx)
			require.NoError(t, err)
			assert.Empty(t, tasks)

			sessions, err := store.GetSessions(ctx)
			require.NoError(t, err)
			assert.Empty(t, sessions)

			wins, err := store.GetMicroWins(ctx)
			require.NoError(t, err)
			assert.Empty(t, wins)
		})
	}
}

func TestStoreClearAll(t *testing.T) {
	now := time.Now()
	for name, kv := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, err := storage.NewStore(storage.StoreConfig{KV: kv})
			require.NoError(t, err)

			require.NoError(t, store.SaveProfile(ctx, model.NewProfile("p1", model.NeuroGeneral, model.MotivationCalm, model.DefaultPreferences(), now)))
			require.NoError(t, store.SaveTasks(ctx, []model.Task{fixtureTask(now)}))
			require.NoError(t, store.SaveSessions(ctx, []model.Session{fixtureSession(now)}))
			require.NoError(t, store.SaveMicroWins(ctx, []model.MicroWin{model.NewMicroWin("w1", model.WinJustStarted, "task-1", now)}))

			require.NoError(t, store.ClearAll(ctx))

			p, err := store.GetProfile(ctx)
			require.NoError(t, err)
			assert.Nil(t, p)
			tasks, err := store.GetTasks(ctx)
			require.NoError(t, err)
			assert.Empty(t, tasks)
			sessions, err := store.GetSessions(ctx)
			require.NoError(t, err)
			assert.Empty(t, sessions)
			wins, err := store.GetMicroWins(ctx)
			require.NoError(t, err)
			assert.Empty(t, wins)
		})
	}
}

func TestStoreSaveOverwritesCollection(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewStore(storage.StoreConfig{KV: storage.NewMemoryKV()})
	require.NoError(t, err)

	now := time.Now()
	first := fixtureTask(now)
	second := fixtureTask(now)
	second.ID = "task-2"

	require.NoError(t, store.SaveTasks(ctx, []model.Task{first, second}))
	require.NoError(t, store.SaveTasks(ctx, []model.Task{second}))

	got, err := store.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "task-2", got[0].ID)
}

func TestStoreCorruptPayload(t *testing.T) {
	tests := map[string]struct {
		key     string
		payload string
		read    func(*storage.Store) error
	}{
		"invalid json": {
			key:     storage.KeyTasks,
			payload: `{not json`,
			read: func(s *storage.Store) error {
				_, err := s.GetTasks(context.Background())
				return err
			},
		},
		"invalid date": {
			key:     storage.KeyMicroWins,
			payload: `[{"id":"w1","type":"step-complete","taskId":"t1","timestamp":"yesterday"}]`,
			read: func(s *storage.Store) error {
				_, err := s.GetMicroWins(context.Background())
				return err
			},
		},
		"invalid profile date": {
			key:     storage.KeyProfile,
			payload: `{"id":"p1","createdAt":"","lastActive":""}`,
			read: func(s *storage.Store) error {
				_, err := s.GetProfile(context.Background())
				return err
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			require.NoError(t, kv.Put(context.Background(), test.key, []byte(test.payload)))
			store, err := storage.NewStore(storage.StoreConfig{KV: kv})
			require.NoError(t, err)

			err = test.read(store)
			assert.ErrorIs(t, err, storage.ErrCorruptRecord)
		})
	}
}

func TestNewStoreRequiresKV(t *testing.T) {
	_, err := storage.NewStore(storage.StoreConfig{})
	assert.Error(t, err)
}

func TestStoredProfileLayout(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	store, err := storage.NewStore(storage.StoreConfig{KV: kv})
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, store.SaveProfile(ctx, model.NewProfile("p1", model.NeuroADHD, model.MotivationFriendly, model.DefaultPreferences(), now)))

	raw, ok, err := kv.Get(ctx, storage.KeyProfile)
	require.NoError(t, err)
	require.True(t, ok)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.ElementsMatch(t,
		[]string{"id", "neuroProfile", "motivationStyle", "preferences", "createdAt", "lastActive"},
		keysOf(doc))

	var prefs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["preferences"], &prefs))
	assert.ElementsMatch(t,
		[]string{"voiceEnabled", "readingMode", "lowSensoryMode", "focusBubbleDefault", "celebrationStyle", "sessionLimitMinutes", "dyslexiaFont"},
		keysOf(prefs))
	assert.Equal(t, "25", string(prefs["sessionLimitMinutes"]))
}

func keysOf(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
