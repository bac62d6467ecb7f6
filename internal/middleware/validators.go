package middleware

import (
	"regexp"
	"strings"
)

// Validaciones de registro que van más allá del binding de gin: fuerza de
// la contraseña, usernames reservados y dominios de email desechables.

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	reservedUsernames = map[string]bool{
		"admin":         true,
		"administrator": true,
		"root":          true,
		"system":        true,
		"support":       true,
		"help":          true,
		"info":          true,
		"contact":       true,
		"noreply":       true,
		"no-reply":      true,
	}

	disposableDomains = map[string]bool{
		"tempmail.org":      true,
		"guerrillamail.com": true,
		"10minutemail.com":  true,
		"mailinator.com":    true,
		"yopmail.com":       true,
	}
)

// validateUsername verifica formato y usernames reservados. Devuelve un
// mensaje de error vacío si es válido.
func validateUsername(username string) string {
	if len(username) < 3 {
		return "El nombre de usuario debe tener al menos 3 caracteres"
	}
	if len(username) > 30 {
		return "El nombre de usuario debe tener menos de 30 caracteres"
	}
	if !usernameRegex.MatchString(username) {
		return "El nombre de usuario solo puede contener letras, números y guiones bajos"
	}
	if reservedUsernames[strings.ToLower(username)] {
		return "Este nombre de usuario está reservado"
	}
	return ""
}

// validateEmailDomain rechaza dominios de email desechables
func validateEmailDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "Formato de email inválido"
	}
	if disposableDomains[strings.ToLower(parts[1])] {
		return "Por favor usa una dirección de email válida"
	}
	return ""
}

// passwordScore puntúa la contraseña de 0 a 5: largo, minúsculas,
// mayúsculas, números y caracteres especiales
func passwordScore(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}
	if strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		score++
	}
	if strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		score++
	}
	if strings.ContainsAny(password, "0123456789") {
		score++
	}
	if strings.ContainsAny(password, `!@#$%^&*(),.?":{}|<>`) {
		score++
	}
	return score
}

// validatePassword exige al menos 3 de los 5 criterios de fuerza
func validatePassword(password string) string {
	if len(password) < 6 {
		return "La contraseña debe tener al menos 6 caracteres"
	}
	if passwordScore(password) < 3 {
		return "La contraseña no cumple los requisitos de seguridad"
	}
	return ""
}
