package client

import (
	"errors"
	"fmt"
	"sort"
	"time"

	appointmentRepo "velora/database/repository/appointment"
	clientRepo "velora/database/repository/client"
	voucherRepo "velora/database/repository/voucher"
	"velora/models"
	"velora/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long issued auth tokens stay valid.
const DefaultTokenTTL = 72 * time.Hour

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotOwner           = errors.New("resource does not belong to this client")
)

// DefaultClientService implements ClientService.
type DefaultClientService struct {
	Repo        clientRepo.ClientRepository
	ApptRepo    appointmentRepo.AppointmentRepository
	VoucherRepo voucherRepo.VoucherRepository
	TokenTTL    time.Duration
}

func (s *DefaultClientService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultTokenTTL
}

// Register creates an account and returns it with a signed auth token.
func (s *DefaultClientService) Register(input models.ClientRegistration) (*models.Client, string, error) {
	existing, err := s.Repo.GetByEmail(input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	client := &models.Client{
		ID:           uuid.New().String(),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(client); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(client.ID, client.Email, s.tokenTTL())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue auth token: %w", err)
	}
	return client, token, nil
}

// Authenticate verifies credentials and returns the client with a token.
func (s *DefaultClientService) Authenticate(email, password string) (*models.Client, string, error) {
	client, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}
	if client == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(client.ID, client.Email, s.tokenTTL())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue auth token: %w", err)
	}
	return client, token, nil
}

// GetProfile retrieves a client's profile.
func (s *DefaultClientService) GetProfile(clientID string) (*models.Client, error) {
	return s.Repo.GetByID(clientID)
}

// UpdateProfile applies the editable profile fields.
func (s *DefaultClientService) UpdateProfile(clientID string, update models.ClientProfileUpdate) (*models.Client, error) {
	client, err := s.Repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if update.FullName != "" {
		client.FullName = update.FullName
	}
	if update.Phone != "" {
		client.Phone = update.Phone
	}
	if err := s.Repo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Appointments splits the client's history into upcoming confirmed
// appointments (soonest first) and everything else (most recent first).
func (s *DefaultClientService) Appointments(clientID string) ([]models.Appointment, []models.Appointment, error) {
	all, err := s.ApptRepo.ListForClient(clientID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	var upcoming, past []models.Appointment
	for _, appt := range all {
		if appt.Status == models.AppointmentConfirmed && appt.StartTime.After(now) {
			upcoming = append(upcoming, appt)
		} else {
			past = append(past, appt)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	return upcoming, past, nil
}

// CancelAppointment flips a client's confirmed appointment to cancelled.
func (s *DefaultClientService) CancelAppointment(clientID, appointmentID string) error {
	appt, err := s.ApptRepo.GetByID(appointmentID)
	if err != nil {
		return err
	}
	if appt.ClientID != clientID {
		return ErrNotOwner
	}
	if appt.Status != models.AppointmentConfirmed {
		return fmt.Errorf("only confirmed appointments can be cancelled")
	}
	return s.ApptRepo.Cancel(appointmentID)
}

// Vouchers returns the client's session packs.
func (s *DefaultClientService) Vouchers(clientID string) ([]models.ClientVoucher, error) {
	return s.VoucherRepo.ListForClient(clientID)
}

// CanBookFromVoucher reports whether the voucher belongs to the client and
// still has sessions remaining.
func (s *DefaultClientService) CanBookFromVoucher(clientID, voucherID string) (bool, error) {
	voucher, err := s.VoucherRepo.GetVoucher(voucherID)
	if err != nil {
		return false, err
	}
	if voucher.ClientID != clientID {
		return false, ErrNotOwner
	}
	return voucher.Usable(), nil
}
