package fraud

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

type reviewFlag struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
	RiskLevel     string `json:"risk_level"`
}

type reviewAnswer struct {
	Suspicious []reviewFlag `json:"suspicious_transactions"`
}

func (a *reviewAnswer) Validate() error {
	for i, f := range a.Suspicious {
		if strings.TrimSpace(f.Reason) == "" {
			return fmt.Errorf("flag %d has no reason", i)
		}
		if strings.TrimSpace(f.TransactionID) == "" {
			return errors.New("flag without transaction_id")
		}
	}
	return nil
}

const systemPrompt = `You are a fraud detection specialist reviewing a user's financial transactions.
Flag transactions that look suspicious because of unusual amounts, suspicious timing such as late night
or several rapid transactions, or categories that do not fit the user's history.
Explain each flag in simple terms and rate its risk as Low, Medium or High.
Only use transaction IDs that appear in the list.`

const reviewSchema = `{"suspicious_transactions": [{"transaction_id": "string", "reason": "string", "risk_level": "Low|Medium|High"}]}`

func reviewPrompt(txs []transaction.Transaction, flagged []analytics.SuspiciousTransaction) string {
	var b strings.Builder

	b.WriteString("Here are the user's recent transactions:\n\n")
	b.WriteString("ID | Amount | Category | Date | Time\n--- | --- | --- | --- | ---\n")
	for _, t := range txs {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
			t.ID, money.FormatUSD(t.Amount), t.Category, t.Timestamp.Format("2006-01-02"), t.Timestamp.Format("15:04:05"))
	}

	b.WriteString("\nSome transactions may have already been flagged by rules:\n")
	if len(flagged) == 0 {
		b.WriteString("None flagged by rules yet.\n")
	} else {
		b.WriteString("Transaction ID | Reason | Risk Level\n--- | --- | ---\n")
		for _, f := range flagged {
			fmt.Fprintf(&b, "%s | %s | %s\n", f.TransactionID, f.Reason, f.RiskLevel)
		}
	}

	b.WriteString("\nAnalyze the transactions and identify any potentially fraudulent activity. " +
		"Return an empty list when nothing looks suspicious.")
	return b.String()
}
