package transaction

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	categoryrepo "github.com/amirasaad/networth/pkg/repository/category"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	transactionrepo "github.com/amirasaad/networth/pkg/repository/transaction"
	"github.com/amirasaad/networth/pkg/service/exchange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transactions"

// Statistics sums the matching transactions in the user's base currency,
// grouped by type and by category. Paging fields of filter are ignored.
func (s *Service) Statistics(
	ctx context.Context,
	userID uuid.UUID,
	filter *dto.TransactionFilter,
) (stats *dto.TransactionStatistics, err error) {
	if err := normalizeFilter(filter); err != nil {
		return nil, err
	}
	all := unpaged(filter)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		summaries, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		transactions, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		categories, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		sum, err := summaries.Get(ctx, userID)
		if err != nil {
			return err
		}
		rows, _, err := transactions.Filter(ctx, userID, all)
		if err != nil {
			return err
		}

		resolver := exchange.NewResolver(uow, userID)
		stats = &dto.TransactionStatistics{
			BaseCurrencyID: sum.BaseCurrencyID,
			Count:          len(rows),
			ByType:         make(map[string]decimal.Decimal),
			ByCategory:     []dto.CategoryTotal{},
		}
		byCategory := make(map[uuid.UUID]*dto.CategoryTotal)
		uncategorized := make(map[string]*dto.CategoryTotal)
		for _, row := range rows {
			v, err := resolver.Convert(ctx, row.Amount, row.CurrencyID, sum.BaseCurrencyID)
			if err != nil {
				return err
			}
			stats.ByType[row.Type] = stats.ByType[row.Type].Add(v)

			var bucket *dto.CategoryTotal
			if row.CategoryID == nil {
				bucket = uncategorized[row.Type]
				if bucket == nil {
					bucket = &dto.CategoryTotal{Name: "Uncategorized", Type: row.Type, Total: decimal.Zero}
					uncategorized[row.Type] = bucket
				}
			} else {
				bucket = byCategory[*row.CategoryID]
				if bucket == nil {
					c, err := categories.Get(ctx, *row.CategoryID)
					if err != nil {
						return err
					}
					bucket = &dto.CategoryTotal{CategoryID: row.CategoryID, Name: c.Name, Type: c.Type, Total: decimal.Zero}
					byCategory[*row.CategoryID] = bucket
				}
			}
			bucket.Count++
			bucket.Total = bucket.Total.Add(v)
		}

		for _, b := range byCategory {
			stats.ByCategory = append(stats.ByCategory, *b)
		}
		for _, b := range uncategorized {
			stats.ByCategory = append(stats.ByCategory, *b)
		}
		sort.Slice(stats.ByCategory, func(i, j int) bool {
			a, b := stats.ByCategory[i], stats.ByCategory[j]
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return a.Name < b.Name
		})
		return nil
	})
	if err != nil {
		s.logger.Error("computing transaction statistics failed", "user_id", userID, "error", err)
		return nil, err
	}
	return stats, nil
}

// Export writes the matching transactions as an xlsx workbook to w.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, filter *dto.TransactionFilter, w io.Writer) error {
	if err := normalizeFilter(filter); err != nil {
		return err
	}
	var (
		rows  []*dto.TransactionRead
		codes = make(map[uuid.UUID]string)
		names = make(map[uuid.UUID]string)
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		currencies, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		categories, err := repository.Get[categoryrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, _, err = transactions.Filter(ctx, userID, unpaged(filter))
		if err != nil {
			return err
		}
		for _, row := range rows {
			if _, ok := codes[row.CurrencyID]; !ok {
				c, err := currencies.Get(ctx, row.CurrencyID)
				if err != nil {
					return err
				}
				codes[row.CurrencyID] = c.Code
			}
			if row.CategoryID != nil {
				if _, ok := names[*row.CategoryID]; !ok {
					c, err := categories.Get(ctx, *row.CategoryID)
					if err != nil {
						return err
					}
					names[*row.CategoryID] = c.Name
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("closing workbook failed", "error", err)
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	headers := []string{"Date", "Type", "Amount", "Currency", "Category", "From Wallet", "To Wallet", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}
	for i, row := range rows {
		category := ""
		if row.CategoryID != nil {
			category = names[*row.CategoryID]
		}
		values := []any{
			row.Date.Format("2006-01-02"),
			row.Type,
			row.Amount.String(),
			codes[row.CurrencyID],
			category,
			optionalID(row.FromWalletID),
			optionalID(row.ToWalletID),
			row.Description,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func unpaged(filter *dto.TransactionFilter) *dto.TransactionFilter {
	if filter == nil {
		return &dto.TransactionFilter{}
	}
	f := *filter
	f.Page, f.PageSize = 0, 0
	return &f
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
