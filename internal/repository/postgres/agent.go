package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
)

type agentRepository struct {
	db *sqlx.DB
}

func NewAgentRepository(db *sqlx.DB) repository.AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, agent *model.Agent) error {
	query := `
		INSERT INTO agents (id, username, pin_hash, assigned_villages, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		agent.ID,
		agent.Username,
		agent.PINHash,
		agent.VillagesJSON,
		agent.IsActive,
		agent.CreatedAt,
		agent.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (r *agentRepository) GetByUsername(ctx context.Context, username string) (*model.Agent, error) {
	query := `SELECT * FROM agents WHERE username = $1 AND deleted_at IS NULL`
	var agent model.Agent
	if err := r.db.GetContext(ctx, &agent, query, username); err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context) ([]*model.Agent, error) {
	query := `SELECT * FROM agents WHERE deleted_at IS NULL ORDER BY username`
	var agents []*model.Agent
	err := r.db.SelectContext(ctx, &agents, query)
	return agents, err
}
