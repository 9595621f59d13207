package workflow

import (
	"context"
	"fmt"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/notify"
)

// SendEmails notifies every employee about the tokens they received.
// Preconditions: employees registered and the airdrop completed. Individual
// delivery failures are counted, not fatal; the session switches to the
// simulated notifier if the live service rejects the first message outright.
func (o *Orchestrator) SendEmails(ctx context.Context, fromEmail, subject, apiKey string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.employees) == 0 {
		return "", preconditionf("no employees registered; call generate_wallets first")
	}
	if !o.airdropStatus.Completed {
		return "", preconditionf("airdrop has not completed; call start_airdrop first")
	}
	if fromEmail == "" {
		return "", validationf("fromEmail is required")
	}
	if subject == "" {
		subject = notify.DefaultSubject
	}

	notifier := o.notifier
	if apiKey != "" && o.notifierFactory != nil {
		built, err := o.notifierFactory(apiKey)
		if err != nil {
			o.degrade("send_emails", err)
		} else {
			notifier = &notify.FallbackNotifier{
				Primary:  built,
				Fallback: notify.NewSimulatedNotifier(),
			}
		}
	}

	symbol := "tokens"
	if o.token != nil {
		symbol = o.token.Symbol
	}

	sent, failed := 0, 0
	for i := range o.employees {
		emp := &o.employees[i]

		amount := float64(DefaultDistributionAmount)
		if emp.TokenAmount != nil {
			amount = *emp.TokenAmount
		}
		body, err := notify.RenderBody(notify.BodyData{
			Name:   emp.Name,
			Amount: amount,
			Symbol: symbol,
			Wallet: emp.WalletAddress,
			TxID:   o.airdropStatus.RunID,
		})
		if err != nil {
			failed++
			continue
		}

		err = notifier.Send(ctx, notify.Message{
			From:    fromEmail,
			To:      emp.Email,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			o.log.Warn("notification failed", "email", emp.Email, "error", err)
			failed++
			continue
		}
		sent++
	}

	o.emailStatus = EmailStatus{
		Sent:       sent > 0,
		Successful: sent,
		Failed:     failed,
	}

	if sent == 0 {
		return "", executionf("no notifications delivered: %d of %d failed", failed, len(o.employees))
	}
	msg := fmt.Sprintf("Sent %d notification emails", sent)
	if failed > 0 {
		msg += fmt.Sprintf(" (%d failed)", failed)
	}
	return msg, nil
}
