package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger/ledgertest"
)

var day0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func days(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

type observation struct {
	operation string
	err       error
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (o *recordingObserver) Observe(operation string, _ time.Time, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seen = append(o.seen, observation{operation: operation, err: err})
}

type fixture struct {
	store    *ledgertest.Store
	ledger   *ledger.Ledger
	observer *recordingObserver
	vehicle  *catalog.Vehicle
	agent    *catalog.Agent
	clientID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := ledgertest.New()
	obs := &recordingObserver{}

	return &fixture{
		store:    store,
		ledger:   ledger.New(store, ledger.WithObserver(obs), ledger.WithClock(func() time.Time { return day0 })),
		observer: obs,
		vehicle: store.AddVehicle(catalog.Vehicle{
			Name:      "Corolla",
			Plate:     "A123456",
			Ownership: catalog.OwnershipThirdParty,
			OwnerName: "Marta Pérez",
			OwnerDNI:  "001-0000001-1",
			DailyRate: 100000,
		}),
		agent:    store.AddAgent(catalog.Agent{Name: "Luis Gómez", DNI: "002-0000002-2"}),
		clientID: uuid.New(),
	}
}

// book creates the three-day rental used by most scenarios.
func (f *fixture) book(t *testing.T, issueInvoice bool) *ledger.Booking {
	t.Helper()

	booking, err := f.ledger.Rentals.Create(context.Background(), ledger.CreateRentalParams{
		VehicleID:    f.vehicle.ID,
		ClientID:     f.clientID,
		StartDate:    days(0),
		EndDate:      days(3),
		DailyRate:    100000,
		Agent:        f.agent.Name,
		IssueInvoice: issueInvoice,
	})
	require.NoError(t, err)

	return booking
}

func payablesByType(payables []ledger.AccountPayable) map[ledger.PayableType]ledger.AccountPayable {
	out := make(map[ledger.PayableType]ledger.AccountPayable, len(payables))
	for _, ap := range payables {
		out[ap.Type] = ap
	}

	return out
}

func adminCtx() context.Context {
	return actor.WithActor(context.Background(), actor.Actor{Subject: "admin", Role: actor.RoleAdmin})
}

func userCtx() context.Context {
	return actor.WithActor(context.Background(), actor.Actor{Subject: "clerk", Role: actor.RoleUser})
}
