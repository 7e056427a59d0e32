package services

import (
	"context"
	"errors"

	"paydocs-backend/internal/models"
	"paydocs-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, ownerID int, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, errors.New("customer name is required")
	}
	customer := &models.Customer{
		OwnerID: ownerID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, ownerID, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, ownerID, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context, ownerID int) ([]*models.Customer, error) {
	return s.Repo.List(ctx, ownerID)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, ownerID, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.Repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		customer.Name = req.Name
	}
	customer.Email = req.Email
	customer.Address = req.Address
	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, ownerID, id int) error {
	return s.Repo.Delete(ctx, ownerID, id)
}
