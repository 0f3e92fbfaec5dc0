// backend-go/internal/dataset/write.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

var recommendationHeader = []string{
	"Product_Category",
	"From_Warehouse",
	"From_Location",
	"To_Warehouse",
	"To_Location",
	"Units",
	"Estimated_Saving_INR",
	"Donor_SPI",
	"Receiver_SPI",
}

// WriteRecommendations renders transfer recommendations as CSV with the
// canonical field names as the header row.
func WriteRecommendations(w io.Writer, recs []domain.TransferRecommendation) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(recommendationHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range recs {
		record := []string{
			r.ProductCategory,
			r.FromWarehouse,
			r.FromLocation,
			r.ToWarehouse,
			r.ToLocation,
			strconv.Itoa(r.Units),
			strconv.FormatFloat(r.EstimatedSavingINR, 'f', 2, 64),
			strconv.FormatFloat(r.DonorSPI, 'f', 2, 64),
			strconv.FormatFloat(r.ReceiverSPI, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
