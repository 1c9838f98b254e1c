package tabu

import "fmt"

// Config задаёт параметры формулы тенуры и ёмкости табу-списка
// (см. internal/tabulist). Нулевые значения означают "использовать
// значения по умолчанию из Zhang et al." — TT=2, D1=5, D2=12, без
// переопределения ёмкости.
type Config struct {
	TT           int
	D1           int
	D2           int
	SizeOverride int
}

// DefaultConfig возвращает параметры по умолчанию, совпадающие с
// исходным алгоритмом (Zhang et al.): tt=2, d1=5, d2=12, без
// переопределения ёмкости табу-списка.
func DefaultConfig() Config {
	return Config{TT: 2, D1: 5, D2: 12}
}

// Validate проверяет согласованность параметров.
func (c Config) Validate() error {
	if c.D1 < 0 {
		return fmt.Errorf("D1 должно быть >= 0 (получено %d)", c.D1)
	}
	if c.SizeOverride < 0 {
		return fmt.Errorf("SizeOverride должно быть >= 0 (получено %d)", c.SizeOverride)
	}
	return nil
}
