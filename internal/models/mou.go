package models

import "time"

// MOU is a memorandum of understanding with a partner institution.
type MOU struct {
	ID                       string    `db:"id" json:"_id"`
	MOUID                    string    `db:"mou_id" json:"ID"`
	NameOfPartnerInstitution string    `db:"name_of_partner_institution" json:"nameOfPartnerInstitution"`
	StrategicAreas           string    `db:"strategic_areas" json:"strategicAreas"`
	CreatedAt                time.Time `db:"created_at" json:"createdAt"`
}

// CreateMOURequest is the payload for adding an MOU.
type CreateMOURequest struct {
	ID                       string `json:"ID"`
	NameOfPartnerInstitution string `json:"nameOfPartnerInstitution"`
	StrategicAreas           string `json:"strategicAreas"`
}

// CreateMOUResult returns the stored MOU with the updated school tally.
type CreateMOUResult struct {
	MOU    *MOU   `json:"mou"`
	School School `json:"school"`
}
