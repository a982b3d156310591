package cipher

// GCD returns the greatest common divisor of a and b by Euclid's
// algorithm. Arguments are expected to be non-negative.
func GCD(a, b int) int {
	for a != 0 {
		a, b = b%a, a
	}
	return b
}

// ModInverse returns the x solving a*x % m == 1, or false when a and m
// are not relatively prime and no inverse exists.
func ModInverse(a, m int) (int, bool) {
	if GCD(a, m) != 1 {
		return 0, false
	}
	u1, u2, u3 := 1, 0, a
	v1, v2, v3 := 0, 1, m
	for v3 != 0 {
		q := u3 / v3
		v1, v2, v3, u1, u2, u3 = u1-q*v1, u2-q*v2, u3-q*v3, v1, v2, v3
	}
	return mod(u1, m), true
}
