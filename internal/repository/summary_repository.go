package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/escola-api/internal/models"
)

// SummaryRepository aggregates entity totals.
type SummaryRepository struct {
	db Queryer
}

// NewSummaryRepository constructs a SummaryRepository.
func NewSummaryRepository(db Queryer) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Totals counts students, teachers, courses and classes in one round trip.
func (r *SummaryRepository) Totals(ctx context.Context) (*models.Summary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM alunos) AS total_alunos,
		(SELECT COUNT(*) FROM professores) AS total_professores,
		(SELECT COUNT(*) FROM cursos) AS total_cursos,
		(SELECT COUNT(*) FROM turmas) AS total_turmas`
	var summary models.Summary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("count totals: %w", err)
	}
	return &summary, nil
}
