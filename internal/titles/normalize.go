// Package titles normaliza nombres de juegos para poder cruzar catálogos
// que usan esquemas de ID distintos. El join por título normalizado es una
// limitación conocida y aceptada: dos ediciones con nombres distintos no
// van a matchear.
package titles

import "strings"

// Normalize devuelve el título en minúsculas y solo alfanumérico,
// la clave de join entre los dos motores.
func Normalize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
