package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hwpaige/launchboard/common"
)

func testRecord(id string, net time.Time, rocket string, status string) common.LaunchRecord {
	return common.LaunchRecord{
		ID:     id,
		Name:   "mission " + id,
		Rocket: rocket,
		Net:    net,
		Status: status,
	}
}

func TestSQLiteArchive_SaveAndGetYear(t *testing.T) {
	s, err := NewSQLiteArchive(":memory:", 0)
	require.NoError(t, err)
	require.False(t, s.IsInterfaceNil())
	defer func() {
		_ = s.Close()
	}()

	ctx := context.Background()

	records := []common.LaunchRecord{
		testRecord("b", time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC), "Falcon 9", "Success"),
		testRecord("a", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), "Falcon 9", "Success"),
		testRecord("c", time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), "Starship", "Failure"),
	}

	err = s.SaveRecords(ctx, common.CategoryPrevious, records)
	require.NoError(t, err)

	year2024, err := s.GetYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, year2024, 2)
	// ascending by launch date
	require.Equal(t, "a", year2024[0].ID)
	require.Equal(t, "b", year2024[1].ID)
	require.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), year2024[0].Net)

	year2023, err := s.GetYear(ctx, 2023)
	require.NoError(t, err)
	require.Len(t, year2023, 1)
	require.Equal(t, "c", year2023[0].ID)

	empty, err := s.GetYear(ctx, 2020)
	require.NoError(t, err)
	require.Len(t, empty, 0)
}

func TestSQLiteArchive_UpsertSupersedesById(t *testing.T) {
	s, err := NewSQLiteArchive(":memory:", 0)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	ctx := context.Background()
	net := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err = s.SaveRecords(ctx, common.CategoryUpcoming, []common.LaunchRecord{
		testRecord("same-id", net, "Falcon 9", "TBD"),
	})
	require.NoError(t, err)

	// a newer fetch carries the final status for the same identifier
	err = s.SaveRecords(ctx, common.CategoryPrevious, []common.LaunchRecord{
		testRecord("same-id", net, "Falcon 9", "Success"),
	})
	require.NoError(t, err)

	records, err := s.GetYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Success", records[0].Status)
}

func TestSQLiteArchive_CountByRocket(t *testing.T) {
	s, err := NewSQLiteArchive(":memory:", 0)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	ctx := context.Background()

	err = s.SaveRecords(ctx, common.CategoryPrevious, []common.LaunchRecord{
		testRecord("1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Falcon 9", "Success"),
		testRecord("2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "Falcon 9", "Success"),
		testRecord("3", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "Starship", "Failure"),
		testRecord("4", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), "Falcon 9", "Success"),
	})
	require.NoError(t, err)

	counts, err := s.CountByRocket(ctx, 2024)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"Falcon 9": 2, "Starship": 1}, counts)

	all, err := s.CountByRocket(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"Falcon 9": 3, "Starship": 1}, all)
}

func TestSQLiteArchive_RetentionCleaner(t *testing.T) {
	// retention horizon of 1 hour: launches older than that are pruned
	s, err := NewSQLiteArchive(":memory:", 3600)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC()

	err = s.SaveRecords(ctx, common.CategoryPrevious, []common.LaunchRecord{
		testRecord("old", now.Add(-2*time.Hour), "Falcon 9", "Success"),
		testRecord("recent", now.Add(-time.Minute), "Falcon 9", "Success"),
	})
	require.NoError(t, err)

	// call the synchronous cleaner instead of waiting for the ticker
	err = s.cleanRetainedLaunches(ctx)
	require.NoError(t, err)

	records, err := s.GetYear(ctx, now.Year())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "recent", records[0].ID)
}

func TestSQLiteArchive_SaveEmptyBatchIsNoOp(t *testing.T) {
	s, err := NewSQLiteArchive(":memory:", 0)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	err = s.SaveRecords(context.Background(), common.CategoryUpcoming, nil)
	require.NoError(t, err)
}
