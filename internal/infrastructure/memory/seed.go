package memory

import "github.com/jhoicas/Muestras-api/internal/domain/entity"

// Los datos maestros no tienen CRUD en esta API; se cargan al arrancar (STORE_DRIVER=memory) o en pruebas.

// AddCountry registra un país.
func (s *Store) AddCountry(c entity.Country) {
	s.seed(func(st *state) { st.countries[c.ID] = c })
}

// AddWarehouse registra una bodega.
func (s *Store) AddWarehouse(w entity.Warehouse) {
	s.seed(func(st *state) { st.warehouses[w.ID] = w })
}

// AddLocation registra una ubicación.
func (s *Store) AddLocation(l entity.Location) {
	s.seed(func(st *state) { st.locations[l.ID] = l })
}

// AddCategory registra una categoría.
func (s *Store) AddCategory(c entity.Category) {
	s.seed(func(st *state) { st.categories[c.ID] = c })
}

// AddSupplier registra un proveedor.
func (s *Store) AddSupplier(p entity.Supplier) {
	s.seed(func(st *state) { st.suppliers[p.ID] = p })
}

// AddResponsible registra un responsable.
func (s *Store) AddResponsible(r entity.Responsible) {
	s.seed(func(st *state) { st.responsibles[r.ID] = r })
}

func (s *Store) seed(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// Demo identificadores fijos de los datos de demostración, para armar tokens y requests de prueba.
type Demo struct {
	CountryCO, CountryPE     string
	WarehouseCO, WarehousePE string
	LocationCO, LocationPE   string
	Responsible              string
	Category, Supplier       string
}

// SeedDemo carga dos países (Colombia y Perú) con una bodega y una ubicación cada uno.
func SeedDemo(s *Store) Demo {
	d := Demo{
		CountryCO:   "6f1c9a52-0c3b-4f0e-9a51-1d2f3e4a5b01",
		CountryPE:   "6f1c9a52-0c3b-4f0e-9a51-1d2f3e4a5b02",
		WarehouseCO: "7a2d0b63-1d4c-4a1f-8b62-2e3f4a5b6c01",
		WarehousePE: "7a2d0b63-1d4c-4a1f-8b62-2e3f4a5b6c02",
		LocationCO:  "8b3e1c74-2e5d-4b20-9c73-3f4a5b6c7d01",
		LocationPE:  "8b3e1c74-2e5d-4b20-9c73-3f4a5b6c7d02",
		Responsible: "9c4f2d85-3f6e-4c31-8d84-4a5b6c7d8e01",
		Category:    "ad503e96-4a7f-4d42-9e95-5b6c7d8e9f01",
		Supplier:    "be614fa7-5b80-4e53-8fa6-6c7d8e9fa001",
	}
	s.AddCountry(entity.Country{ID: d.CountryCO, Code: "CO", Name: "Colombia"})
	s.AddCountry(entity.Country{ID: d.CountryPE, Code: "PE", Name: "Perú"})
	s.AddWarehouse(entity.Warehouse{ID: d.WarehouseCO, CountryID: d.CountryCO, Name: "Bodega Bogotá"})
	s.AddWarehouse(entity.Warehouse{ID: d.WarehousePE, CountryID: d.CountryPE, Name: "Bodega Lima"})
	s.AddLocation(entity.Location{ID: d.LocationCO, WarehouseID: d.WarehouseCO, Name: "Estante A1"})
	s.AddLocation(entity.Location{ID: d.LocationPE, WarehouseID: d.WarehousePE, Name: "Estante B1"})
	s.AddResponsible(entity.Responsible{ID: d.Responsible, Name: "Laboratorio central"})
	s.AddCategory(entity.Category{ID: d.Category, Name: "Granos"})
	s.AddSupplier(entity.Supplier{ID: d.Supplier, Name: "Proveedor demo"})
	return d
}
