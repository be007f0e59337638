package exchange

import (
	"fmt"
	"strings"

	"github.com/acksonp2c/pscbot/core/telegram/format"
	"github.com/acksonp2c/pscbot/internal/orders"
)

// Texts renders the German, Markdown formatted user facing messages.
type Texts struct {
	ServiceName    string
	SupportContact string
}

func (t Texts) service() string { return format.MD(t.ServiceName) }
func (t Texts) support() string { return format.MD(t.SupportContact) }

func (t Texts) Welcome() string {
	return fmt.Sprintf("👋 Willkommen bei *%s*!\n\n"+
		"Wir bieten einen sicheren Exchange von *PaySafeCards* zu *Litecoin (LTC)* an. 🚀\n\n"+
		"💎 *Gebühren: 20%%*\n"+
		"👤 Service by %s\n"+
		"🛠 Support %s\n\n"+
		"Wähle eine Option aus dem Menü unten:", t.service(), t.support(), t.support())
}

func (t Texts) Info() string {
	return fmt.Sprintf("💎 *%s Service*\n\n"+
		"Wir tauschen deine PaySafeCards schnell und sicher in LTC um.\n\n"+
		"Gebühren: 20%%\n"+
		"👤 Admin: %s\n"+
		"📢 Support: %s\n\n"+
		"Klicke auf /start um zum Hauptmenü zu gelangen.", t.service(), t.support(), t.support())
}

func (t Texts) AskAddress() string {
	return "🪙 *Litecoin (LTC) Exchange*\n\n" +
		"Bitte sende mir jetzt deine *Litecoin (LTC) Adresse*, an die das Guthaben gesendet werden soll. 📥"
}

func (t Texts) InvalidAddress() string {
	return "❌ Das sieht nicht nach einer gültigen *Litecoin (LTC) Adresse* aus. Bitte sende sie erneut."
}

func (t Texts) AskCode() string {
	return "💳 Super! Bitte sende mir nun den *PaySafeCard Code*. 📝"
}

func (t Texts) InvalidCode() string {
	return "❌ Bitte sende einen gültigen *PaySafeCard Code*."
}

func (t Texts) AskAmount() string {
	return "💰 Wie hoch ist der *Betrag* der PaySafeCard? (nur Zahl, z.B. 25)"
}

func (t Texts) InvalidAmount() string {
	return "❌ Bitte gib einen gültigen Betrag ein (nur Zahl)."
}

func (t Texts) Summary(d Draft) string {
	return fmt.Sprintf("📊 *Zusammenfassung:*\n"+
		"Betrag: %s€\n"+
		"Gebühr (20%%): %s€\n"+
		"Auszahlung: %s€ in LTC\n\n"+
		"📸 Bitte sende mir jetzt einen *Screenshot vom Bon* der PaySafeCard. 🖼",
		FormatAmount(d.Amount), FormatAmount(d.Fee), FormatAmount(d.Payout))
}

func (t Texts) InvalidProof() string {
	return "⚠️ Bitte sende einen Screenshot (Foto) vom Bon."
}

func (t Texts) Submitted() string {
	return "⏳ Deine Anfrage wurde an den Admin weitergeleitet. Bitte warte auf eine Bestätigung. 🙏"
}

func (t Texts) Failure() string {
	return "⚠️ Es ist ein Fehler aufgetreten. Bitte versuche es in Kürze erneut."
}

func (t Texts) Cancelled() string {
	return "🛑 Der Exchange wurde abgebrochen. Mit /start kannst du neu beginnen."
}

func (t Texts) NothingToCancel() string {
	return "Es läuft gerade kein Exchange. Mit /start kannst du einen beginnen."
}

// AdminReview is the caption attached to the forwarded payment proof.
func (t Texts) AdminReview(id int64, d Draft, username string) string {
	user := "-"
	if u := strings.TrimPrefix(strings.TrimSpace(username), "@"); u != "" {
		user = "@" + format.MD(u)
	}
	return fmt.Sprintf("📥 *Neue Exchange Anfrage #%d*\n\n"+
		"👤 *User:* %s (ID: %d)\n"+
		"🪙 *LTC Addy:* `%s`\n"+
		"💳 *PSC Code:* `%s`\n"+
		"💰 *Betrag:* %s€\n"+
		"💸 *Fee (20%%):* %s€\n"+
		"✅ *Auszahlung:* %s€\n\n"+
		"Bitte prüfe den Screenshot und entscheide:",
		id, user, d.UserID, format.MDCode(d.Address), format.MDCode(d.Code),
		FormatAmount(d.Amount), FormatAmount(d.Fee), FormatAmount(d.Payout))
}

func (t Texts) OwnerAccepted(payout string) string {
	return fmt.Sprintf("✅ Deine Anfrage wurde vom Admin *akzeptiert*. Die Auszahlung von %s€ in LTC erfolgt in Kürze! 🚀", payout)
}

func (t Texts) OwnerDeclined() string {
	return "❌ Deine Anfrage wurde vom Admin *abgelehnt*. Bei Fragen wende dich an den Support."
}

func (t Texts) AdminDecided(id int64, status orders.Status) string {
	if status == orders.StatusAccepted {
		return fmt.Sprintf("✅ Du hast die Anfrage #%d *akzeptiert*.", id)
	}
	return fmt.Sprintf("❌ Du hast die Anfrage #%d *abgelehnt*.", id)
}

func (t Texts) AlreadyDecided(id int64) string {
	return fmt.Sprintf("ℹ️ Die Anfrage #%d wurde bereits bearbeitet.", id)
}

// PendingList summarizes open orders for the admin.
func (t Texts) PendingList(list []orders.Order) string {
	if len(list) == 0 {
		return "✅ Keine offenen Anfragen."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🗂 *Offene Anfragen (%d):*\n\n", len(list))
	for _, o := range list {
		fmt.Fprintf(&b, "#%d · %s · %s€ → %s€ · %s\n",
			o.ID,
			format.MD(format.DerefString(o.Username, fmt.Sprintf("ID %d", o.UserID))),
			FormatAmount(o.Amount), FormatAmount(o.Payout),
			o.CreatedAt().Format("02.01.2006 15:04"),
		)
	}
	return b.String()
}

// MenuButtons is the main menu keyboard.
func (t Texts) MenuButtons() [][]Button {
	return [][]Button{
		{{Text: "🔄 Exchange starten", Key: KeyMenu, Payload: ChoiceBeginExchange}},
		{{Text: "ℹ️ Info / Support", Key: KeyMenu, Payload: ChoiceShowInfo}},
	}
}

// DecisionButtons binds accept and decline to order id.
func (t Texts) DecisionButtons(id int64) [][]Button {
	payload := fmt.Sprintf("%d", id)
	return [][]Button{{
		{Text: "✅ Akzeptieren", Key: KeyAccept, Payload: payload},
		{Text: "❌ Ablehnen", Key: KeyDecline, Payload: payload},
	}}
}
