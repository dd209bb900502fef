package html

import "fmt"

const (
	// CSRFCookieName holds the double submit token the server checks.
	CSRFCookieName = "X-CSRF-Token"
	// CSRFFieldName is the form field POST forms echo the token in.
	CSRFFieldName = "_csrf"
)

// CSRFFormScript copies the CSRF cookie into every POST form as it is
// submitted, so forms rendered after page load are covered too.
func CSRFFormScript() string {
	return fmt.Sprintf(`<script>
document.addEventListener("submit", function (event) {
  var form = event.target;
  if (!form || (form.getAttribute("method") || "GET").toUpperCase() !== "POST") return;
  var match = document.cookie.match(/(?:^|;\s*)%s=([^;]*)/);
  if (!match) return;
  var field = form.querySelector("input[name='%s']");
  if (!field) {
    field = document.createElement("input");
    field.type = "hidden";
    field.name = "%s";
    form.appendChild(field);
  }
  field.value = decodeURIComponent(match[1]);
}, true);
</script>`, CSRFCookieName, CSRFFieldName, CSRFFieldName)
}
