// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized function-field mocks can be reused across test packages:
// set the Fn field for the method you care about and leave the rest nil
// to get the in-memory default behavior.
//
//	mockCards := mocks.NewMockCardStore()
//	mockCards.FindByOwnerFn = func(ctx context.Context, ownerID uuid.UUID, cardType string) ([]*domain.Card, error) {
//	    return fixtures, nil
//	}
package mocks
