package transaction

import (
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// parseFilter reads the transaction filter from the query string. Pagination
// is only read when paged is set.
func parseFilter(c *fiber.Ctx, paged bool) (*dto.TransactionFilter, error) {
	f := &dto.TransactionFilter{}
	if t := c.Query("type"); t != "" {
		f.Type = &t
	}
	var err error
	if f.WalletID, err = common.QueryUUID(c, "wallet_id"); err != nil {
		return nil, err
	}
	if f.CategoryID, err = common.QueryUUID(c, "category_id"); err != nil {
		return nil, err
	}
	if f.CurrencyID, err = common.QueryUUID(c, "currency_id"); err != nil {
		return nil, err
	}
	if f.DateFrom, err = common.QueryTime(c, "date_from"); err != nil {
		return nil, err
	}
	if f.DateTo, err = common.QueryTime(c, "date_to"); err != nil {
		return nil, err
	}
	if f.MinAmount, err = common.QueryDecimal(c, "min_amount"); err != nil {
		return nil, err
	}
	if f.MaxAmount, err = common.QueryDecimal(c, "max_amount"); err != nil {
		return nil, err
	}
	if paged {
		if f.Page, f.PageSize, err = common.Page(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}
