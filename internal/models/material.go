package models

type ProvidedMaterial struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Picture struct {
	Src string `json:"src"`
	ID  string `json:"id"`
}

type Material struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	PricePerDay         float64            `json:"pricePerDay"`
	CoachingPriceHour   float64            `json:"coachingPriceHour"`
	ProvidedMaterials   []ProvidedMaterial `json:"providedMaterials"`
	UnavailableDates    []string           `json:"unavailableDates"`
	ArrayPicture        []Picture          `json:"arrayPicture"`
	PresentationPicture string             `json:"presentationPicture"`
}
