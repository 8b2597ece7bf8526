// internal/render/render.go
package render

import (
    "fmt"
    "strings"

    "github.com/unclebandit/automailer-backend/internal/model"
)

// Render substitutes {placeholder} names in the template with row values.
// A name missing from the row (or an absent cell) becomes the empty string.
// Braces that do not form a valid placeholder name pass through unchanged,
// so a malformed template can never abort a batch. Render never fails.
func Render(template string, row model.Row) string {
    var b strings.Builder
    b.Grow(len(template))

    i := 0
    for i < len(template) {
        c := template[i]
        if c != '{' {
            b.WriteByte(c)
            i++
            continue
        }

        end := strings.IndexByte(template[i+1:], '}')
        if end < 0 {
            // unclosed brace, keep the rest as-is
            b.WriteString(template[i:])
            break
        }

        name := template[i+1 : i+1+end]
        if !validName(name) {
            b.WriteByte('{')
            i++
            continue
        }

        b.WriteString(Stringify(row[name]))
        i += end + 2
    }

    return b.String()
}

// validName accepts the column-name shape the dataset loader produces:
// letters, digits and underscores, at least one character.
func validName(name string) bool {
    if name == "" {
        return false
    }
    for i := 0; i < len(name); i++ {
        c := name[i]
        switch {
        case c >= 'a' && c <= 'z':
        case c >= 'A' && c <= 'Z':
        case c >= '0' && c <= '9':
        case c == '_':
        default:
            return false
        }
    }
    return true
}

// Stringify converts a scalar row value to its canonical string form.
// Absent (nil) values become the empty string.
func Stringify(v any) string {
    if v == nil {
        return ""
    }
    if s, ok := v.(string); ok {
        return s
    }
    return fmt.Sprint(v)
}
