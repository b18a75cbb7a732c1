package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/categories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of v and reports failures as
// common.ErrorValidation naming the offending fields.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(msgs, ", "))
}

// checkCategories normalizes ids and verifies each one against the catalog.
// An empty result is a validation error.
func checkCategories(ctx context.Context, repo categories.Repository, ids []string) ([]string, error) {
	ids = reading.NormalizeCategories(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", common.ErrorValidation)
	}

	known, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	set := make(map[string]struct{}, len(known))
	for _, c := range known {
		set[c.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, id)
		}
	}
	return ids, nil
}

// checkID rejects ids that cannot exist in the store. Malformed ids are
// reported as not found rather than as a database error.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}
