package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffsync/internal/models"
	"staffsync/internal/storage"
)

func TestSOPs_SeedWhenAbsentOrCorrupt(t *testing.T) {
	backend := storage.NewMemory()
	s := New(backend, nil)

	seeded := s.LoadSOPs()
	require.NotEmpty(t, seeded)
	assert.Equal(t, DefaultVideoURL, seeded[0].Video.URL)

	require.NoError(t, backend.Set(sopsKey, []byte("[broken")))
	assert.Equal(t, seeded, s.LoadSOPs())
}

func TestSOPs_SeedMergeKeepsRealRecording(t *testing.T) {
	cases := []struct {
		name string
		url  string
		kept bool
	}{
		{"local blob reference", "blob:https://app.local/3f2a", true},
		{"locally hosted asset", "/sop-videos/espresso.webm", true},
		{"non-default hosted url", "https://media.example.com/espresso.mp4", true},
		{"stale placeholder", DefaultVideoURL, false},
		{"empty url", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(storage.NewMemory(), nil)
			stored := seedSOPs()
			stored[0].Video.URL = tc.url
			require.NoError(t, s.SaveSOPs(stored))

			got := s.LoadSOPs()
			if tc.kept {
				assert.Equal(t, tc.url, got[0].Video.URL, "override looks like a real upload")
			} else {
				assert.Equal(t, DefaultVideoURL, got[0].Video.URL, "override discarded as not a real upload")
			}
		})
	}
}

func TestSOPs_SeedMergeRestoresStructuralFields(t *testing.T) {
	s := New(storage.NewMemory(), nil)
	stored := seedSOPs()
	seedPoster := stored[0].Poster
	stored[0].Poster = ""
	stored[0].Duration = ""
	require.NoError(t, s.SaveSOPs(stored))

	got := s.LoadSOPs()
	assert.Equal(t, seedPoster, got[0].Poster, "missing stored field falls back to seed")
	assert.NotEmpty(t, got[0].Duration)
}

func TestSOPs_StoredFieldsWinOverSeed(t *testing.T) {
	s := New(storage.NewMemory(), nil)
	stored := seedSOPs()
	stored[0].TaskName = "Espresso machine deep clean"
	stored[0].Steps.ES = "Purgar las lanzas de vapor."
	require.NoError(t, s.SaveSOPs(stored))

	got := s.LoadSOPs()
	assert.Equal(t, "Espresso machine deep clean", got[0].TaskName)
	assert.Equal(t, "Purgar las lanzas de vapor.", got[0].Steps.ES)
}

func TestSOPs_UnknownStoredRecordPassesThrough(t *testing.T) {
	s := New(storage.NewMemory(), nil)
	local := models.SOP{ID: "sop-local-1", TaskName: "New task", Video: models.SOPVideo{URL: "blob:x"}}
	require.NoError(t, s.SaveSOPs([]models.SOP{local}))
	got := s.LoadSOPs()
	require.Len(t, got, 1)
	assert.Equal(t, local, got[0])
}

func TestSOPs_AddAssignsLocalIDAndPrepends(t *testing.T) {
	s := testStore(t)
	added, err := s.AddSOP(models.SOP{TaskName: "Wine cellar restock"})
	require.NoError(t, err)
	assert.Equal(t, "sop-t1", added.ID, "local id carries the sop prefix")

	got := s.LoadSOPs()
	assert.Equal(t, added.ID, got[0].ID, "new record leads the collection")
}

func TestSOPs_AddKeepsExternalID(t *testing.T) {
	s := testStore(t)
	added, err := s.AddSOP(models.SOP{ID: "recXYZ", TaskName: "External record"})
	require.NoError(t, err)
	assert.Equal(t, "recXYZ", added.ID)
}

func TestSOPs_UpdatePatchesOnlyGivenFields(t *testing.T) {
	s := testStore(t)
	category := "Kitchen"
	require.NoError(t, s.UpdateSOP("sop-1", SOPPatch{Category: &category}))

	sop, ok := s.FindSOP("sop-1")
	require.True(t, ok)
	assert.Equal(t, "Kitchen", sop.Category)
	assert.Equal(t, "Espresso machine morning setup", sop.TaskName)
}

func TestSOPs_DeleteThenLoadKeepsOthers(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.DeleteSOP("sop-1"))
	_, ok := s.FindSOP("sop-1")
	assert.False(t, ok)

	_, ok = s.FindSOP("sop-2")
	assert.True(t, ok)

	require.NoError(t, s.DeleteSOP("sop-missing"))
	_, ok = s.FindSOP("sop-2")
	assert.True(t, ok, "deleting a missing id is a no-op")
}
