package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"bus_ticketing/internal/models"
)

// SalesService derives revenue reports from the ledger. Reads run inside
// one transaction so a report never sees half of a concurrent booking.
type SalesService struct {
	db *gorm.DB
}

func NewSalesService(db *gorm.DB) *SalesService {
	return &SalesService{db: db}
}

// SoldTicket is one row of a sales report: the sales record joined with
// its ticket, trip, and selling agent.
type SoldTicket struct {
	RecordID        uint      `json:"record_id"`
	TicketID        uint      `json:"ticket_id"`
	PassengerName   string    `json:"passenger_name"`
	PassengerPhone  string    `json:"passenger_phone"`
	PaymentMethod   string    `json:"payment_method"`
	DepartureCity   string    `json:"departure_city"`
	DestinationCity string    `json:"destination_city"`
	AgentName       string    `json:"agent_name"`
	SaleAmount      float64   `json:"sale_amount"`
	SoldAt          time.Time `json:"sold_at"`
}

type SalesSummary struct {
	TotalSales  float64      `json:"total_sales"`
	SoldTickets []SoldTicket `json:"sold_tickets"`
}

type AgentSalesSummary struct {
	Sales         []SoldTicket `json:"sales"`
	TotalForAgent float64      `json:"total_for_agent"`
}

const soldTicketColumns = `sales_records.id AS record_id,
	tickets.id AS ticket_id,
	tickets.passenger_name,
	tickets.passenger_phone,
	tickets.payment_method,
	bus_trips.departure_city,
	bus_trips.destination_city,
	agents.name AS agent_name,
	sales_records.amount AS sale_amount,
	sales_records.sold_at`

func soldTicketQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.SalesRecord{}).
		Select(soldTicketColumns).
		Joins("JOIN tickets ON tickets.id = sales_records.ticket_id").
		Joins("JOIN bus_trips ON bus_trips.id = tickets.bus_trip_id").
		Joins("JOIN agents ON agents.id = sales_records.sold_by").
		Order("sales_records.sold_at ASC, sales_records.id ASC")
}

// Summary returns total revenue and every sold ticket, ordered by sale
// time ascending (record id breaks ties).
func (s *SalesService) Summary() (*SalesSummary, error) {
	summary := &SalesSummary{SoldTickets: []SoldTicket{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SalesRecord{}).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.TotalSales).Error; err != nil {
			return err
		}
		return soldTicketQuery(tx).Scan(&summary.SoldTickets).Error
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// AgentSummary returns the sale rows attributed to one agent plus their
// total, in the same order as Summary.
func (s *SalesService) AgentSummary(agentID uint) (*AgentSalesSummary, error) {
	if agentID == 0 {
		return nil, ErrInvalidInput
	}
	summary := &AgentSalesSummary{Sales: []SoldTicket{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var agent models.Agent
		if err := tx.First(&agent, agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAgentNotFound
			}
			return err
		}
		if err := tx.Model(&models.SalesRecord{}).
			Where("sold_by = ?", agentID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.TotalForAgent).Error; err != nil {
			return err
		}
		return soldTicketQuery(tx).
			Where("sales_records.sold_by = ?", agentID).
			Scan(&summary.Sales).Error
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
