package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/repository"
	"github.com/stretchr/testify/require"
)

var (
	majorsPartition  = catalog.Partition{ID: "majors", Path: "/schedules-majors.json"}
	liberalPartition = catalog.Partition{ID: "liberal-arts", Path: "/schedules-liberal-arts.json"}
)

func TestLectureRepository_ReplaceAndFetch(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	lectures := []lecture.Lecture{
		{ID: "M2", Title: "운영체제", Grade: 3, Credits: "3", Major: "컴퓨터공학과", Schedule: "화4~6(F208)"},
		{ID: "M1", Title: "자료구조", Grade: 2, Credits: "3", Major: "컴퓨터공학과", Schedule: "월1~3(F207)<p>수4"},
		{ID: "M3", Title: "캡스톤", Grade: 4, Credits: "30", Major: "컴퓨터공학과<p>심화", Schedule: ""},
	}

	n, err := repo.ReplacePartition(ctx, majorsPartition.ID, lectures)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	got, err := repo.FetchPartition(ctx, majorsPartition)
	require.NoError(t, err)
	require.Equal(t, lectures, got)
}

func TestLectureRepository_ReplaceOverwrites(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	_, err := repo.ReplacePartition(ctx, majorsPartition.ID, []lecture.Lecture{{ID: "old", Title: "old"}})
	require.NoError(t, err)
	_, err = repo.ReplacePartition(ctx, liberalPartition.ID, []lecture.Lecture{{ID: "L1", Title: "글쓰기"}})
	require.NoError(t, err)
	_, err = repo.ReplacePartition(ctx, majorsPartition.ID, []lecture.Lecture{{ID: "new1"}, {ID: "new2"}})
	require.NoError(t, err)

	got, err := repo.FetchPartition(ctx, majorsPartition)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "new1", got[0].ID)

	counts, err := repo.CountPartitions(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"majors": 2, "liberal-arts": 1}, counts)
}

func TestLectureRepository_ReplaceIsAtomic(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	_, err := repo.ReplacePartition(ctx, majorsPartition.ID, []lecture.Lecture{{ID: "keep"}})
	require.NoError(t, err)

	_, err = repo.ReplacePartition(ctx, majorsPartition.ID, []lecture.Lecture{{ID: "a"}, {ID: ""}})
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	got, err := repo.FetchPartition(ctx, majorsPartition)
	require.NoError(t, err)
	require.Equal(t, "keep", got[0].ID)

	_, err = repo.ReplacePartition(ctx, "", nil)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestLectureRepository_MissingPartition(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLectureRepository(db)

	_, err := repo.FetchPartition(context.Background(), liberalPartition)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLectureRepository_EmptyPartition(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	n, err := repo.ReplacePartition(ctx, liberalPartition.ID, []lecture.Lecture{})
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := repo.FetchPartition(ctx, liberalPartition)
	require.NoError(t, err)
	require.Empty(t, got)

	counts, err := repo.CountPartitions(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{liberalPartition.ID: 0}, counts)

	_, err = repo.ReplacePartition(ctx, majorsPartition.ID, []lecture.Lecture{{ID: "M1"}})
	require.NoError(t, err)
	all, err := catalog.NewLoader(repo, []catalog.Partition{majorsPartition, liberalPartition}, nil).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestLectureRepository_AsCatalogSource(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	_, err := repo.ReplacePartition(ctx, majorsPartition.ID, []lecture.Lecture{{ID: "M1"}, {ID: "M2"}})
	require.NoError(t, err)

	loader := catalog.NewLoader(repo, []catalog.Partition{majorsPartition, liberalPartition}, nil)
	_, err = loader.FetchAll(ctx)
	require.ErrorIs(t, err, catalog.ErrFetchFailed)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.ReplacePartition(ctx, liberalPartition.ID, []lecture.Lecture{{ID: "L1"}})
	require.NoError(t, err)

	all, err := loader.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "L1", all[2].ID)
}
