package stock

type CreateItemInput struct {
	Name         string
	Category     string
	Department   string
	CurrentStock int
	MinStock     int
	Unit         string
}
