package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/pkg/logger"
)

const (
	placeholder  = "................"
	defaultCycle = "Theo thỏa thuận"
)

var contractDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ContractService reads contracts and builds the printable contract
type ContractService interface {
	List(ctx context.Context, session *models.Session) ([]models.Contract, error)
	Current(ctx context.Context, session *models.Session) (*models.Contract, error)
	Printable(ctx context.Context, session *models.Session) (*models.PrintableContract, error)
}

// contractService implements ContractService
type contractService struct {
	contractRepo repository.ContractRepository
	profile      ProfileService
	logger       *logger.Logger
}

// NewContractService creates a new instance of ContractService
func NewContractService(contractRepo repository.ContractRepository, profile ProfileService, logger *logger.Logger) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		profile:      profile,
		logger:       logger,
	}
}

// List returns all contracts of the tenant
func (s *contractService) List(ctx context.Context, session *models.Session) ([]models.Contract, error) {
	contracts, err := s.contractRepo.List(ctx, session.UpstreamToken)
	if err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to get contracts")
		return nil, fromUpstream(err)
	}
	return contracts, nil
}

// Current returns the active contract, or the first one when none is active
func (s *contractService) Current(ctx context.Context, session *models.Session) (*models.Contract, error) {
	contracts, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}
	current := currentContract(contracts)
	if current == nil {
		return nil, newError(ErrNotFound, "Không tìm thấy hợp đồng")
	}
	return current, nil
}

func currentContract(contracts []models.Contract) *models.Contract {
	for i := range contracts {
		if contracts[i].Status == models.ContractStatusActive {
			return &contracts[i]
		}
	}
	if len(contracts) > 0 {
		return &contracts[0]
	}
	return nil
}

// Printable combines the current contract with the tenant profile
func (s *contractService) Printable(ctx context.Context, session *models.Session) (*models.PrintableContract, error) {
	contract, err := s.Current(ctx, session)
	if err != nil {
		return nil, err
	}
	customer, err := s.profile.Current(ctx, session)
	if err != nil {
		return nil, err
	}
	return buildPrintable(contract, customer), nil
}

func buildPrintable(contract *models.Contract, customer *models.Customer) *models.PrintableContract {
	room := rentedRoom(customer, contract)

	building := contract.Building
	if building == "" {
		building = room.Building
	}
	cycle := strings.TrimSpace(contract.Cycle)
	if cycle == "" {
		cycle = defaultCycle
	}

	p := &models.PrintableContract{
		LandlordName:    orPlaceholder(contract.ManagerName),
		LandlordIDNo:    orPlaceholder(contract.ManagerIDNo),
		LandlordPhone:   orPlaceholder(contract.ManagerPhone),
		LandlordAddress: orPlaceholder(contract.ManagerAddr),
		TenantName:      orPlaceholder(customer.FullName),
		TenantIDNo:      orPlaceholder(customer.IDNumber),
		TenantPhone:     orPlaceholder(customer.Phone),
		TenantGender:    orPlaceholder(customer.Gender),
		TenantBirthday:  printDate(customer.Birthday),
		TenantAddress:   orPlaceholder(customer.Address),
		Building:        orPlaceholder(building),
		Room:            orPlaceholder(room.Number),
		Area:            orPlaceholder(room.Area),
		Cycle:           cycle,
		StartDate:       printDate(contract.StartDate),
		EndDate:         printDate(contract.EndDate),
		Amenities:       room.Amenities,
		IDCardFront:     customer.IDCardFront,
		IDCardBack:      customer.IDCardBack,
	}
	p.RoomPrice, p.RoomPriceWords = printAmount(room.Price)
	p.Deposit, p.DepositWords = printAmount(contract.Deposit)
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	return p
}

// rentedRoom is the room of the rental under this contract, or of the first
// rental when none matches.
func rentedRoom(customer *models.Customer, contract *models.Contract) models.Room {
	for _, r := range customer.Rentals {
		if (contract.ID != "" && r.ContractID == contract.ID) || (contract.RoomID != "" && r.Room.ID == contract.RoomID) {
			return r.Room
		}
	}
	if len(customer.Rentals) > 0 {
		return customer.Rentals[0].Room
	}
	return models.Room{}
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return placeholder
	}
	return s
}

func printAmount(a billing.Amount) (string, string) {
	if !a.Valid {
		return placeholder, ""
	}
	return billing.FormatVND(a.Value), billing.CurrencyText(a.Value)
}

// printDate writes dates as d/m/yyyy. Unknown layouts are printed as they came.
func printDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return placeholder
	}
	for _, layout := range contractDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
		}
	}
	return s
}
