package branch

import (
	"context"
	"fmt"
	"strings"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
)

type branchServiceImpl struct {
	branchRepo branch.BranchRepository
}

func NewBranchService(branchRepo branch.BranchRepository) branch.BranchService {
	return &branchServiceImpl{
		branchRepo: branchRepo,
	}
}

func (s *branchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	entity := branch.Branch{
		Name:      strings.TrimSpace(req.Name),
		Location:  strings.TrimSpace(req.Location),
		ManagerID: req.ManagerID,
	}

	created, err := s.branchRepo.Create(ctx, entity)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	return branch.ToResponse(created), nil
}

func (s *branchServiceImpl) GetByID(ctx context.Context, id string) (branch.BranchResponse, error) {
	entity, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(entity), nil
}

func (s *branchServiceImpl) List(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}
