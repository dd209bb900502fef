package nav

import "monterhyra/models"

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username string
	Role     string
}

func BuildTopNavData(session models.Session) TopNavData {
	return TopNavData{Username: session.User.Username, Role: session.User.Role}
}

// Links are the admin portal sections in menu order.
var Links = []struct {
	Href  string
	Label string
}{
	{"/admin/orders", "Beställningar"},
	{"/admin/users", "Användare"},
	{"/admin/help", "Hjälp"},
}
