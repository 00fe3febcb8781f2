package services

import (
	"errors"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_ticketing/internal/models"
)

// TicketingService owns the booking consistency core: seat availability,
// ticket issuance, and the sales ledger. Every mutation runs inside a
// single transaction so a paid ticket can never persist without its
// sales record and a seat can never be sold twice.
type TicketingService struct {
	db *gorm.DB
}

func NewTicketingService(db *gorm.DB) *TicketingService {
	return &TicketingService{db: db}
}

type IssueTicketInput struct {
	BusTripID      uint
	SeatNumber     int
	PassengerName  string
	PassengerPhone string
	AgentID        uint
	IsPaid         bool
	PaymentMethod  string
}

type PaymentUpdateInput struct {
	TicketID uint
	Amount   *float64
	SoldBy   *uint
}

// PaymentResult tells the caller whether a payment update created the
// sales record or amended an existing one.
type PaymentResult string

const (
	PaymentCreated PaymentResult = "created"
	PaymentUpdated PaymentResult = "updated"
)

// IsSeatAvailable reports whether no ticket holds the seat on the trip.
// Read-only; issuance re-checks under the unique index, so a true result
// here is only advisory.
func (s *TicketingService) IsSeatAvailable(tripID uint, seatNumber int) (bool, error) {
	if seatNumber < 1 || seatNumber > models.SeatCapacity {
		return false, ErrInvalidInput
	}
	var trip models.BusTrip
	if err := s.db.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTripNotFound
		}
		return false, err
	}
	var count int64
	err := s.db.Model(&models.Ticket{}).
		Where("bus_trip_id = ? AND seat_number = ?", tripID, seatNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// IssueTicket books a seat for a passenger. When the ticket is paid at
// booking time the matching sales record (amount = trip price) is written
// in the same transaction. A duplicate-seat violation from the store maps
// to ErrSeatTaken.
func (s *TicketingService) IssueTicket(in IssueTicketInput) (*models.Ticket, error) {
	if in.BusTripID == 0 || in.AgentID == 0 ||
		in.PassengerName == "" || in.PassengerPhone == "" {
		return nil, ErrInvalidInput
	}
	if in.SeatNumber < 1 || in.SeatNumber > models.SeatCapacity {
		return nil, ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" || !in.IsPaid {
		method = models.PaymentCash
	}
	if !models.ValidPaymentMethod(method) {
		return nil, ErrInvalidInput
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var trip models.BusTrip
	if err := tx.First(&trip, in.BusTripID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	var agent models.Agent
	if err := tx.First(&agent, in.AgentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	// Fast-path check; the unique index on (bus_trip_id, seat_number)
	// remains the authoritative guard below.
	var taken int64
	if err := tx.Model(&models.Ticket{}).
		Where("bus_trip_id = ? AND seat_number = ?", in.BusTripID, in.SeatNumber).
		Count(&taken).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if taken > 0 {
		tx.Rollback()
		return nil, ErrSeatTaken
	}

	ticket := models.Ticket{
		BusTripID:      in.BusTripID,
		SeatNumber:     in.SeatNumber,
		PassengerName:  in.PassengerName,
		PassengerPhone: in.PassengerPhone,
		IsPaid:         in.IsPaid,
		PaymentMethod:  method,
		SoldBy:         in.AgentID,
		SoldAt:         time.Now(),
	}
	if err := tx.Create(&ticket).Error; err != nil {
		tx.Rollback()
		if IsDuplicateKey(err) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}

	if in.IsPaid {
		record := models.SalesRecord{
			TicketID: ticket.ID,
			Amount:   trip.Price,
			SoldBy:   in.AgentID,
			SoldAt:   ticket.SoldAt,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		ticket.SalesRecord = &record
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"trip_id":   ticket.BusTripID,
		"seat":      ticket.SeatNumber,
		"agent_id":  ticket.SoldBy,
		"is_paid":   ticket.IsPaid,
	}).Info("ticket issued")

	return &ticket, nil
}

// RecordOrUpdatePayment creates the sales record for a ticket (marking it
// paid) or partially updates an existing one. When two callers race to
// create the record, the loser detects the unique-index violation and
// falls back to the update path.
func (s *TicketingService) RecordOrUpdatePayment(in PaymentUpdateInput) (PaymentResult, *models.SalesRecord, error) {
	if in.TicketID == 0 {
		return "", nil, ErrInvalidInput
	}
	if in.Amount != nil && *in.Amount <= 0 {
		return "", nil, ErrInvalidInput
	}

	result, record, err := s.tryRecordPayment(in)
	if err != nil && IsDuplicateKey(err) {
		// Lost a create race; the row exists now, amend it instead.
		return s.tryRecordPayment(in)
	}
	return result, record, err
}

func (s *TicketingService) tryRecordPayment(in PaymentUpdateInput) (PaymentResult, *models.SalesRecord, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return "", nil, tx.Error
	}

	var ticket models.Ticket
	if err := tx.First(&ticket, in.TicketID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrTicketNotFound
		}
		return "", nil, err
	}

	if in.SoldBy != nil {
		var agent models.Agent
		if err := tx.First(&agent, *in.SoldBy).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil, ErrAgentNotFound
			}
			return "", nil, err
		}
	}

	var record models.SalesRecord
	err := tx.Where("ticket_id = ?", in.TicketID).First(&record).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record, err = s.createSalesRecord(tx, &ticket, in)
		if err != nil {
			tx.Rollback()
			return "", nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return "", nil, err
		}
		return PaymentCreated, &record, nil
	case err != nil:
		tx.Rollback()
		return "", nil, err
	}

	updates := map[string]interface{}{}
	if in.Amount != nil {
		updates["amount"] = *in.Amount
	}
	if in.SoldBy != nil {
		updates["sold_by"] = *in.SoldBy
	}
	if len(updates) > 0 {
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			tx.Rollback()
			return "", nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return "", nil, err
	}
	return PaymentUpdated, &record, nil
}

func (s *TicketingService) createSalesRecord(tx *gorm.DB, ticket *models.Ticket, in PaymentUpdateInput) (models.SalesRecord, error) {
	amount := 0.0
	if in.Amount != nil {
		amount = *in.Amount
	} else {
		var trip models.BusTrip
		if err := tx.First(&trip, ticket.BusTripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.SalesRecord{}, ErrTripNotFound
			}
			return models.SalesRecord{}, err
		}
		amount = trip.Price
	}

	soldBy := ticket.SoldBy
	if in.SoldBy != nil {
		soldBy = *in.SoldBy
	}

	record := models.SalesRecord{
		TicketID: ticket.ID,
		Amount:   amount,
		SoldBy:   soldBy,
		SoldAt:   time.Now(),
	}
	if err := tx.Create(&record).Error; err != nil {
		return models.SalesRecord{}, err
	}

	method := ticket.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if err := tx.Model(ticket).Updates(map[string]interface{}{
		"is_paid":        true,
		"payment_method": method,
	}).Error; err != nil {
		return models.SalesRecord{}, err
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"amount":    amount,
		"agent_id":  soldBy,
	}).Info("payment recorded")

	return record, nil
}
