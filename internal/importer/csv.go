package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
)

// dateLayout is the wire format for transaction dates in CSV files.
const dateLayout = "2006-01-02"

// transactionRow is the CSV shape of one transaction, input and output.
// Optional columns may be absent from input files; gocsv leaves them zero.
type transactionRow struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	Description   string `csv:"description"`
	Memo          string `csv:"memo"`
	Amount        string `csv:"amount"`
	Currency      string `csv:"currency"`
	Type          string `csv:"type"`
	RawDesc       string `csv:"raw_description"`
	RawMemo       string `csv:"raw_memo"`
	RawCategory   string `csv:"raw_category"`
	CategoryID    string `csv:"category_id"`
	SubCategoryID string `csv:"sub_category_id"`
	Method        string `csv:"method"`
	Confidence    string `csv:"confidence"`
	Reasoning     string `csv:"reasoning"`
}

// ReadTransactionsCSV reads a provider export into transactions. Rows with an
// unparsable date or amount fail the whole read; a partial import is worse
// than a clear error.
func ReadTransactionsCSV(filePath, userID string, logger logging.Logger) ([]models.Transaction, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField("file", filePath).Info("reading transactions file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening transactions file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("failed to close transactions file")
		}
	}()

	var rows []transactionRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parsing transactions file: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := rowToTransaction(row, userID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		transactions = append(transactions, tx)
	}

	logger.WithField(logging.FieldCount, len(transactions)).Info("transactions file read")
	return transactions, nil
}

// WriteTransactionsCSV writes categorized transactions, creating parent
// directories as needed.
func WriteTransactionsCSV(transactions []models.Transaction, filePath string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("failed to close output file")
		}
	}()

	rows := make([]transactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = transactionToRow(tx)
	}

	writer := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	logger.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("transactions written")
	return nil
}

func rowToTransaction(row transactionRow, userID string) (models.Transaction, error) {
	date, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q: %w", row.Date, err)
	}

	currency := row.Currency
	if currency == "" {
		currency = "ILS"
	}
	amount, err := models.NewMoneyFromString(row.Amount, currency)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", row.Amount, err)
	}

	confidence := 0.0
	if row.Confidence != "" {
		confidence, err = strconv.ParseFloat(row.Confidence, 64)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid confidence %q: %w", row.Confidence, err)
		}
	}

	return models.Transaction{
		ID:          row.ID,
		UserID:      userID,
		Date:        date,
		Description: row.Description,
		Memo:        row.Memo,
		Raw: models.RawProviderText{
			Description:   row.RawDesc,
			Memo:          row.RawMemo,
			CategoryLabel: row.RawCategory,
		},
		Amount:        amount,
		Type:          models.ParseTransactionType(row.Type),
		CategoryID:    row.CategoryID,
		SubCategoryID: row.SubCategoryID,
		Method:        models.CategorizationMethod(row.Method),
		Confidence:    confidence,
		Reasoning:     row.Reasoning,
	}, nil
}

func transactionToRow(tx models.Transaction) transactionRow {
	confidence := ""
	if tx.Confidence > 0 {
		confidence = fmt.Sprintf("%.2f", tx.Confidence)
	}
	return transactionRow{
		ID:            tx.ID,
		Date:          tx.Date.Format(dateLayout),
		Description:   tx.Description,
		Memo:          tx.Memo,
		Amount:        tx.Amount.Amount.String(),
		Currency:      tx.Amount.Currency,
		Type:          string(tx.Type),
		RawDesc:       tx.Raw.Description,
		RawMemo:       tx.Raw.Memo,
		RawCategory:   tx.Raw.CategoryLabel,
		CategoryID:    tx.CategoryID,
		SubCategoryID: tx.SubCategoryID,
		Method:        string(tx.Method),
		Confidence:    confidence,
		Reasoning:     tx.Reasoning,
	}
}
