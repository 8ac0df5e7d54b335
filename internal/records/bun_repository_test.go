package records_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if err := records.CreateSchema(context.Background(), bunDB); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return bunDB
}

func TestRecordsService_WithBunAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	repo := records.NewBunRepositoryWithCache(bunDB, cacheSvc, keySerializer)
	svc := records.NewService(repo,
		records.WithIDGenerator(sequentialUUIDs("00000000-0000-0000-0000-00000000c101")),
		records.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
	)

	created, err := svc.Create(ctx, featureInput("en"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	it := featureInput("it")
	it.RecordID = created.RecordID
	it.Title = "Sincronizzazione"
	if _, err := svc.Save(ctx, it); err != nil {
		t.Fatalf("save it: %v", err)
	}

	fetched, err := svc.Get(ctx, records.KindFeatures, created.RecordID, "it")
	if err != nil {
		t.Fatalf("get it: %v", err)
	}
	if fetched.Title != "Sincronizzazione" || len(fetched.Features) != 2 {
		t.Fatalf("unexpected row %+v", fetched)
	}

	update := featureInput("en")
	update.RecordID = created.RecordID
	update.Icon = "remix:RiRocketLine"
	if _, err := svc.Save(ctx, update); err != nil {
		t.Fatalf("update en: %v", err)
	}

	rows, err := svc.Translations(ctx, records.KindFeatures, created.RecordID)
	if err != nil {
		t.Fatalf("translations: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Icon != "remix:RiRocketLine" {
			t.Fatalf("expected propagated icon on %s, got %q", row.Locale, row.Icon)
		}
	}

	listed, err := svc.List(ctx, records.KindFeatures, "it")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Locale != "it" || listed[0].Fallback {
		t.Fatalf("unexpected list %+v", listed)
	}

	if err := svc.Delete(ctx, records.KindFeatures, created.RecordID, "it"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.RecordID, "it"); !errors.Is(err, records.ErrRecordNotFound) {
		t.Fatalf("expected deleted row to be gone, got %v", err)
	}
}

func TestBunRepositoryGetMissingRow(t *testing.T) {
	repo := records.NewBunRepository(newBunDB(t))

	_, err := repo.Get(context.Background(), uuid.MustParse("00000000-0000-0000-0000-00000000beef"), "en")
	if !errors.Is(err, records.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	var nf *records.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "localized row" {
		t.Fatalf("expected typed not found error, got %v", err)
	}
}
