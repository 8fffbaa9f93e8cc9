//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/proj-int-univesp/lai-cmg/internal/model"
	"github.com/proj-int-univesp/lai-cmg/internal/repository"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=lai_cmg password=lai_cmg_password dbname=lai_cmg_test sslmode=disable TimeZone=America/Sao_Paulo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to the test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.OrgUnit{},
		&model.Account{},
		&model.Citizen{},
		&model.StaffMember{},
		&model.RoutingConfig{},
		&model.RequestCounter{},
		&model.InfoRequest{},
		&model.RequestEvent{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func seedCitizen(t *testing.T) *model.Citizen {
	t.Helper()
	citizen := &model.Citizen{
		Name:       "Cidadão de Teste",
		DocumentID: fmt.Sprintf("DOC%d", time.Now().UnixNano()),
		City:       "Campinas",
		State:      "SP",
	}
	if err := testDB.Create(citizen).Error; err != nil {
		t.Fatalf("seeding citizen: %v", err)
	}
	t.Cleanup(func() {
		testDB.Unscoped().Delete(citizen)
	})
	return citizen
}

// TestRequestCounter_Concurrency drives the per-year counter from many
// goroutines and checks the issued numbers are gap-free.
func TestRequestCounter_Concurrency(t *testing.T) {
	counters := repository.NewRequestCounterRepo(testDB)
	year := 2900 + int(time.Now().UnixNano()%100)
	t.Cleanup(func() {
		testDB.Unscoped().Where("year = ?", year).Delete(&model.RequestCounter{})
	})

	const workers = 16
	numbers := make([]int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			n, err := counters.Next(context.Background(), year)
			if err != nil {
				t.Errorf("Next: %v", err)
				return
			}
			numbers[slot] = n
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, workers)
	for _, n := range numbers {
		if n < 1 || n > workers {
			t.Errorf("number %d outside [1,%d]", n, workers)
		}
		if seen[n] {
			t.Errorf("number %d issued twice", n)
		}
		seen[n] = true
	}
}

// TestInfoRequest_CreateAssignsNumber checks number assignment and the
// creation event share the insert transaction.
func TestInfoRequest_CreateAssignsNumber(t *testing.T) {
	requests := repository.NewInfoRequestRepo(testDB)
	citizen := seedCitizen(t)
	year := 2800 + int(time.Now().UnixNano()%100)
	t.Cleanup(func() {
		testDB.Unscoped().Where("registration_year = ?", year).Delete(&model.InfoRequest{})
		testDB.Unscoped().Where("year = ?", year).Delete(&model.RequestCounter{})
	})

	req := &model.InfoRequest{
		Situation:        model.SituationIntake,
		RegistrationYear: year,
		Title:            "Teste de integração",
		Description:      "Solicitação criada pelo teste de integração.",
		SubmittedAt:      time.Now(),
		RequesterID:      citizen.CitizenID,
	}
	if err := requests.Create(context.Background(), req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.RegistrationNumber != 1 {
		t.Errorf("first number of the year should be 1, got %d", req.RegistrationNumber)
	}

	events, err := requests.ListEvents(context.Background(), req.RequestID)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].ToSituation != model.SituationIntake {
		t.Errorf("creation event missing or wrong: %+v", events)
	}
}

// TestInfoRequest_TransitionRollback checks a failing closure leaves the
// record untouched and appends no event.
func TestInfoRequest_TransitionRollback(t *testing.T) {
	requests := repository.NewInfoRequestRepo(testDB)
	citizen := seedCitizen(t)
	year := 2700 + int(time.Now().UnixNano()%100)
	t.Cleanup(func() {
		testDB.Unscoped().Where("registration_year = ?", year).Delete(&model.InfoRequest{})
		testDB.Unscoped().Where("year = ?", year).Delete(&model.RequestCounter{})
	})

	req := &model.InfoRequest{
		Situation:        model.SituationIntake,
		RegistrationYear: year,
		Title:            "Rollback",
		Description:      "x",
		SubmittedAt:      time.Now(),
		RequesterID:      citizen.CitizenID,
	}
	if err := requests.Create(context.Background(), req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := fmt.Errorf("guard rejected")
	_, err := requests.Transition(context.Background(), req.RequestID, func(r *model.InfoRequest) (*model.RequestEvent, error) {
		r.Situation = model.SituationSourcing
		return nil, boom
	})
	if err == nil {
		t.Fatal("Transition should propagate the closure error")
	}

	reloaded, err := requests.GetByID(context.Background(), req.RequestID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Situation != model.SituationIntake {
		t.Errorf("rolled-back transition must keep AI, got %s", reloaded.Situation)
	}
	events, _ := requests.ListEvents(context.Background(), req.RequestID)
	if len(events) != 1 {
		t.Errorf("expected only the creation event, got %d", len(events))
	}
}
