package entity

// Stock cantidad disponible de un producto. Distingue "sin seguimiento"
// (columna NULL en la base) de cero unidades: un producto sin seguimiento
// nunca se puede vender.
type Stock struct {
	tracked bool
	units   int64
}

// TrackedStock construye un stock con seguimiento de n unidades.
func TrackedStock(units int64) Stock {
	return Stock{tracked: true, units: units}
}

// UntrackedStock construye el estado "sin seguimiento".
func UntrackedStock() Stock {
	return Stock{}
}

// StockFromPtr convierte el valor nullable de la base (NULL = sin seguimiento).
func StockFromPtr(units *int64) Stock {
	if units == nil {
		return UntrackedStock()
	}
	return TrackedStock(*units)
}

// Tracked indica si el producto lleva seguimiento de stock.
func (s Stock) Tracked() bool { return s.tracked }

// Units devuelve las unidades disponibles; 0 si no hay seguimiento.
func (s Stock) Units() int64 {
	if !s.tracked {
		return 0
	}
	return s.units
}

// Covers indica si hay seguimiento y unidades suficientes para cantidad.
func (s Stock) Covers(cantidad int64) bool {
	return s.tracked && s.units >= cantidad
}

// IntPtr devuelve la representación nullable para persistir (NULL = sin seguimiento).
func (s Stock) IntPtr() *int64 {
	if !s.tracked {
		return nil
	}
	u := s.units
	return &u
}
