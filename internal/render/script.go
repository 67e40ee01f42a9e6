package render

import (
	"encoding/json"
	"fmt"
)

// ApplyScript builds the post-load script pass for a filter result. The
// three steps are ordered deliberately: collapse everything first, then
// re-open the expand set, then mark highlights. Highlighting before
// expanding would leave matches invisible inside collapsed ancestors.
func ApplyScript(highlights, expands []string) string {
	if highlights == nil {
		highlights = []string{}
	}
	if expands == nil {
		expands = []string{}
	}
	hl, _ := json.Marshal(highlights)
	ex, _ := json.Marshal(expands)
	return fmt.Sprintf(`const highlights = %s;
const expands = %s;
document.querySelectorAll('.jblock').forEach(el => el.classList.add('collapsed'));
expands.forEach(p => {
  const el = document.querySelector(`+"`[data-jpath=\"${p}\"]`"+`);
  if (el) el.classList.remove('collapsed');
});
highlights.forEach(p => {
  const el = document.querySelector(`+"`[data-jpath=\"${p}\"]`"+`);
  if (el) el.classList.add('jhighlight');
});`, hl, ex)
}

// ResetScript builds the script pass for a cleared filter: every container
// is re-opened and no highlight is applied.
func ResetScript() string {
	return "document.querySelectorAll('.jblock').forEach(el => el.classList.remove('collapsed'));"
}
