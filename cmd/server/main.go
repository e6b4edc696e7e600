package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "warhold/internal/adapter/http"
	metricsinmem "warhold/internal/adapter/metrics/inmemory"
	gormrepo "warhold/internal/adapter/repo/gorm"
	memrepo "warhold/internal/adapter/repo/memory"
	"warhold/internal/app/admin"
	"warhold/internal/app/claim"
	"warhold/internal/app/history"
	"warhold/internal/app/mint"
	"warhold/internal/app/ports"
	"warhold/internal/app/resource"
	"warhold/internal/app/token"
	"warhold/internal/app/view"
	"warhold/internal/domain/ledger"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// Fixed contract addresses of the simulated ledger.
const (
	warriorContract  = ledger.Address("0xwarrior")
	landContract     = ledger.Address("0xland")
	resourceContract = ledger.Address("0xresource")
)

func main() {
	repos := mustBuildRepos()
	mustSeedGenesis(repos)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		MintUC: mint.UseCase{
			TxManager: repos.tx,
			Warriors:  repos.warriors,
			Events:    repos.events,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		TokenUC: token.UseCase{
			TxManager: repos.tx,
			Warriors:  repos.warriors,
			Lands:     repos.lands,
			Events:    repos.events,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		ClaimUC: claim.UseCase{
			TxManager: repos.tx,
			Warriors:  repos.warriors,
			Lands:     repos.lands,
			Resources: repos.resources,
			Events:    repos.events,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		AdminUC: admin.UseCase{
			TxManager: repos.tx,
			Warriors:  repos.warriors,
			Resources: repos.resources,
			Events:    repos.events,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		ResourceUC: resource.UseCase{
			TxManager: repos.tx,
			Resources: repos.resources,
			Events:    repos.events,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		ViewUC: view.UseCase{
			Warriors:  repos.warriors,
			Lands:     repos.lands,
			Resources: repos.resources,
		},
		HistoryUC: history.UseCase{Events: repos.events},
		KPI:       kpiRecorder,
	}

	addr := strEnv("WARHOLD_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("warhold ledger listening on %s (owner: %s)", addr, ownerFromEnv())
	s.Spin()
}

type repoSet struct {
	warriors  ports.WarriorRepository
	lands     ports.LandRepository
	resources ports.ResourceRepository
	events    ports.EventRepository
	tx        ports.TxManager
}

func mustBuildRepos() repoSet {
	dsn := strings.TrimSpace(os.Getenv("WARHOLD_DB_DSN"))
	if dsn == "" {
		log.Println("WARHOLD_DB_DSN not set, using in-memory ledger")
		store := memrepo.NewStore()
		return repoSet{
			warriors:  memrepo.NewWarriorRepo(store),
			lands:     memrepo.NewLandRepo(store),
			resources: memrepo.NewResourceRepo(store),
			events:    memrepo.NewEventRepo(store),
			tx:        memrepo.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strEnv("WARHOLD_MIGRATIONS_DIR", "./migrations"); dirExists(dir) {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return repoSet{
		warriors:  gormrepo.NewWarriorRepo(db),
		lands:     gormrepo.NewLandRepo(db),
		resources: gormrepo.NewResourceRepo(db),
		events:    gormrepo.NewEventRepo(db),
		tx:        gormrepo.NewTxManager(db),
	}
}

func mustSeedGenesis(repos repoSet) {
	ctx := context.Background()
	_, err := repos.warriors.Load(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load warrior state: %v", err)
	}

	warrior, land, res := buildGenesis(genesisConfig{
		Owner:            ownerFromEnv(),
		PriceWei:         uint64Env("WARHOLD_PRICE_WEI", ledger.DefaultPriceWei),
		LandClaimSeconds: uint64Env("WARHOLD_LAND_CLAIM_SECONDS", uint64(ledger.DefaultLandClaimTime/time.Second)),
		ClaimReward:      uint64Env("WARHOLD_CLAIM_REWARD", 50),
	})
	if err := repos.warriors.Save(ctx, warrior, 0); err != nil {
		log.Fatalf("seed warrior state: %v", err)
	}
	if err := repos.lands.Save(ctx, land, 0); err != nil {
		log.Fatalf("seed land state: %v", err)
	}
	if err := repos.resources.Save(ctx, res, 0); err != nil {
		log.Fatalf("seed resource state: %v", err)
	}
	log.Println("seeded genesis ledger state")
}

type genesisConfig struct {
	Owner            ledger.Address
	PriceWei         uint64
	LandClaimSeconds uint64
	ClaimReward      uint64
}

func buildGenesis(cfg genesisConfig) (ledger.WarriorState, ledger.LandState, ledger.ResourceState) {
	warrior := ledger.NewWarriorState(warriorContract, cfg.Owner)
	warrior.PriceWei = cfg.PriceWei
	warrior.LandClaimTime = time.Duration(cfg.LandClaimSeconds) * time.Second
	warrior.ClaimRewardUnits = cfg.ClaimReward
	warrior.LandAddr = landContract
	warrior.ResourceAddr = resourceContract
	warrior.Version = 1

	land := ledger.NewLandState(landContract, cfg.Owner, warriorContract)
	land.Version = 1

	res := ledger.NewResourceState(resourceContract, cfg.Owner)
	res.GameMasters[warriorContract] = true
	res.GameMasters[landContract] = true
	res.Version = 1

	return warrior, land, res
}

func ownerFromEnv() ledger.Address {
	return ledger.Address(strEnv("WARHOLD_OWNER", "0xowner"))
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func uint64Env(key string, fallback uint64) uint64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
