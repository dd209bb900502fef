package orders

import (
	"fmt"
	"strings"

	"monterhyra/frontend/pricing"
	"monterhyra/models"
)

// Summary is the plain-text order confirmation sent to customers and shown
// in the admin portal.
func Summary(o models.Order) string {
	c := o.CustomerInfo
	cfg := o.OrderData.Config

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("BESTÄLLNINGSSAMMANFATTNING")
	line("")
	line("Beställningsnummer: %s", o.ID)
	line("Datum: %s", o.Timestamp.Format("2006-01-02 15:04"))
	line("")
	line("KUNDUPPGIFTER:")
	line("Namn: %s", c.Name)
	line("E-post: %s", c.Email)
	line("Telefon: %s", c.Phone)
	line("Företag: %s", c.Company)
	line("Leveransadress: %s", c.DeliveryAddress)
	line("")
	line("EVENTUPPGIFTER:")
	line("Eventdatum: %s", c.EventDate)
	line("Eventtid: %s", c.EventTime)
	line("Uppsättningstid: %s", c.SetupTime)
	line("Hämtningstid: %s", c.PickupTime)
	if msg := strings.TrimSpace(c.Message); msg != "" {
		line("Meddelande: %s", msg)
	}
	line("")
	line("BESTÄLLNINGSDETALJER:")
	line("Möbler: %d st", len(cfg.Furniture))
	line("Växter: %d st", len(cfg.Plants))
	line("Förråd: %d st", len(cfg.Storages))
	line("Totalpris: %s", pricing.FormatSEK(o.OrderData.TotalPrice))
	line("")
	line("FILER:")
	line("Alla tryckfiler och designer finns tillgängliga i admin-portalen.")
	line("Kontakta oss för att få tillgång till filerna.")
	line("")
	line("Med vänliga hälsningar,")
	b.WriteString("Monterhyra Team")
	return b.String()
}
