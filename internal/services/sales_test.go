package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus_ticketing/internal/models"
)

func sellTicket(t *testing.T, svc *TicketingService, tripID, agentID uint, seat int) *models.Ticket {
	t.Helper()
	in := issueInput(tripID, agentID, seat)
	in.IsPaid = true
	ticket, err := svc.IssueTicket(in)
	require.NoError(t, err)
	return ticket
}

func setSoldAt(t *testing.T, svc *TicketingService, ticketID uint, at time.Time) {
	t.Helper()
	err := svc.db.Model(&models.SalesRecord{}).
		Where("ticket_id = ?", ticketID).
		Update("sold_at", at).Error
	require.NoError(t, err)
}

func TestSummaryTotalsAndOrdering(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	karim := seedAgent(t, db, "Karim Tazi", "karim@buscompany.ma")
	amina := seedAgent(t, db, "Amina Bouabid", "amina@buscompany.ma")
	trip := seedTrip(t, db, admin.ID, 100)

	ticketing := NewTicketingService(db)
	t1 := sellTicket(t, ticketing, trip.ID, karim.ID, 1)
	t2 := sellTicket(t, ticketing, trip.ID, amina.ID, 2)
	t3 := sellTicket(t, ticketing, trip.ID, karim.ID, 3)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	setSoldAt(t, ticketing, t1.ID, base.Add(2*time.Hour))
	setSoldAt(t, ticketing, t2.ID, base)
	// Same timestamp as t2: record id must break the tie.
	setSoldAt(t, ticketing, t3.ID, base)

	svc := NewSalesService(db)
	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.Equal(t, 300.0, summary.TotalSales)
	require.Len(t, summary.SoldTickets, 3)

	assert.Equal(t, t2.ID, summary.SoldTickets[0].TicketID)
	assert.Equal(t, t3.ID, summary.SoldTickets[1].TicketID)
	assert.Equal(t, t1.ID, summary.SoldTickets[2].TicketID)

	first := summary.SoldTickets[0]
	assert.Equal(t, "Amina Bouabid", first.AgentName)
	assert.Equal(t, "Casablanca", first.DepartureCity)
	assert.Equal(t, "Marrakech", first.DestinationCity)
	assert.Equal(t, "Mehdi El Amrani", first.PassengerName)
	assert.Equal(t, 100.0, first.SaleAmount)
}

func TestSummaryIdempotentWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	karim := seedAgent(t, db, "Karim Tazi", "karim@buscompany.ma")
	trip := seedTrip(t, db, admin.ID, 120)

	ticketing := NewTicketingService(db)
	sellTicket(t, ticketing, trip.ID, karim.ID, 1)
	sellTicket(t, ticketing, trip.ID, karim.ID, 2)

	svc := NewSalesService(db)
	first, err := svc.Summary()
	require.NoError(t, err)
	second, err := svc.Summary()
	require.NoError(t, err)

	assert.Equal(t, first.TotalSales, second.TotalSales)
	assert.Equal(t, len(first.SoldTickets), len(second.SoldTickets))
}

func TestSummaryEmptyLedger(t *testing.T) {
	db := newTestDB(t)

	svc := NewSalesService(db)
	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Zero(t, summary.TotalSales)
	assert.Empty(t, summary.SoldTickets)
}

func TestSummaryExcludesUnpaidTickets(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	karim := seedAgent(t, db, "Karim Tazi", "karim@buscompany.ma")
	trip := seedTrip(t, db, admin.ID, 100)

	ticketing := NewTicketingService(db)
	sellTicket(t, ticketing, trip.ID, karim.ID, 1)
	_, err := ticketing.IssueTicket(issueInput(trip.ID, karim.ID, 2))
	require.NoError(t, err)

	svc := NewSalesService(db)
	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.TotalSales)
	assert.Len(t, summary.SoldTickets, 1)
}

func TestAgentSummary(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	karim := seedAgent(t, db, "Karim Tazi", "karim@buscompany.ma")
	amina := seedAgent(t, db, "Amina Bouabid", "amina@buscompany.ma")

	ticketing := NewTicketingService(db)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, price := range []float64{50, 75, 100} {
		trip := seedTrip(t, db, admin.ID, price)
		ticket := sellTicket(t, ticketing, trip.ID, karim.ID, i+1)
		setSoldAt(t, ticketing, ticket.ID, base.Add(time.Duration(i)*time.Hour))
	}
	// Another agent's sale must not leak into Karim's summary.
	trip := seedTrip(t, db, admin.ID, 999)
	sellTicket(t, ticketing, trip.ID, amina.ID, 1)

	svc := NewSalesService(db)
	summary, err := svc.AgentSummary(karim.ID)
	require.NoError(t, err)

	assert.Equal(t, 225.0, summary.TotalForAgent)
	require.Len(t, summary.Sales, 3)
	assert.Equal(t, 50.0, summary.Sales[0].SaleAmount)
	assert.Equal(t, 75.0, summary.Sales[1].SaleAmount)
	assert.Equal(t, 100.0, summary.Sales[2].SaleAmount)
	for _, row := range summary.Sales {
		assert.Equal(t, "Karim Tazi", row.AgentName)
	}
}

func TestAgentSummaryErrors(t *testing.T) {
	db := newTestDB(t)

	svc := NewSalesService(db)

	_, err := svc.AgentSummary(0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AgentSummary(42)
	assert.ErrorIs(t, err, ErrAgentNotFound)
}
