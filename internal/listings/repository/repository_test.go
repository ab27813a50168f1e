package repository

import (
	"strings"
	"testing"

	"broker_portal_backend/internal/listings/domain"
)

func TestOperationFilterMirrorsOffersOperation(t *testing.T) {
	cases := []struct {
		op           domain.Operation
		wantContains []string
		wantExcludes []string
	}{
		{
			op:           domain.OperationSale,
			wantContains: []string{"'venda_locacao'"},
		},
		{
			op:           domain.OperationRental,
			wantContains: []string{"'venda_locacao'"},
		},
		{
			op:           domain.OperationSaleOrRental,
			wantContains: []string{"'venda'", "'locacao'"},
		},
		{
			op:           domain.OperationSeasonal,
			wantExcludes: []string{"'venda_locacao'", "'venda'", "'locacao'"},
		},
	}

	for _, tc := range cases {
		clause := operationFilter(tc.op, "$1")
		if !strings.Contains(clause, "$1") {
			t.Fatalf("%s: clause %q drops the placeholder", tc.op, clause)
		}
		for _, want := range tc.wantContains {
			if !strings.Contains(clause, want) {
				t.Fatalf("%s: clause %q misses %s", tc.op, clause, want)
			}
		}
		for _, bad := range tc.wantExcludes {
			if strings.Contains(clause, bad) {
				t.Fatalf("%s: clause %q must not widen to %s", tc.op, clause, bad)
			}
		}
	}
}
