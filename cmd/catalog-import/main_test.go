package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/repository/mocks"
	"github.com/rpggio/coursegrid/internal/sqlite"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var partitions = []catalog.Partition{
	{ID: "majors", Path: "/schedules-majors.json"},
	{ID: "liberal-arts", Path: "/schedules-liberal-arts.json"},
}

func newRepo(t *testing.T) *sqlite.LectureRepository {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewLectureRepository(db)
}

func TestImportCatalog_FromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schedules-majors.json"),
		[]byte(`[{"id":"CS101","title":"자료구조","grade":2,"credits":"3","major":"컴퓨터공학과","schedule":"월1~3"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schedules-liberal-arts.json"),
		[]byte(`[{"id":"GE100","title":"글쓰기","grade":1,"credits":"2","major":"교양","schedule":""},{"id":"GE200","title":"철학","grade":1,"credits":"2","major":"교양","schedule":"금1"}]`), 0o644))

	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, importCatalog(ctx, catalog.NewFileSource(dir), repo, partitions, nil))

	counts, err := repo.CountPartitions(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"majors": 1, "liberal-arts": 2}, counts)

	loader := catalog.NewLoader(repo, partitions, nil)
	all, err := loader.FetchAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"CS101", "GE100", "GE200"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestImportCatalog_FailedReadStoresNothing(t *testing.T) {
	src := &mocks.Source{}
	src.On("FetchPartition", mock.Anything, partitions[0]).Return([]lecture.Lecture{{ID: "CS101"}}, nil)
	src.On("FetchPartition", mock.Anything, partitions[1]).Return(nil, errors.New("503"))

	repo := newRepo(t)
	ctx := context.Background()
	err := importCatalog(ctx, src, repo, partitions, nil)
	require.ErrorIs(t, err, catalog.ErrFetchFailed)

	counts, err := repo.CountPartitions(ctx)
	require.NoError(t, err)
	require.Empty(t, counts)
}

func TestImportCatalog_NoPartitions(t *testing.T) {
	require.ErrorIs(t, importCatalog(context.Background(), &mocks.Source{}, newRepo(t), nil, nil), catalog.ErrNoPartitions)
}
