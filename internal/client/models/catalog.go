package models

import "time"

// Rubrique is the top level of the document hierarchy.
type Rubrique struct {
	ID            string         `json:"idRubrique"`
	Libelle       string         `json:"libelle"`
	Description   string         `json:"description"`
	TypeRubriques []TypeRubrique `json:"typeRubriques,omitempty"`
}

// RubriqueInput is the payload for creating or editing a rubrique.
type RubriqueInput struct {
	Libelle     string `json:"libelle,omitempty"`
	Description string `json:"description,omitempty"`
}

// TypeRubrique groups the files of a rubrique.
type TypeRubrique struct {
	ID        string    `json:"idTypeRubrique"`
	Nom       string    `json:"nomTypeRubrique"`
	Rubrique  *Rubrique `json:"rubrique,omitempty"`
	Fichiers  []Fichier `json:"fichiers,omitempty"`
	CreatedAt time.Time `json:"dateCreation,omitempty"`
	UpdatedAt time.Time `json:"dateModification,omitempty"`
}

type Fichier struct {
	ID        string    `json:"idFichier"`
	Nom       string    `json:"nomFichier"`
	Type      string    `json:"typeFichier"`
	Taille    int64     `json:"tailleFichier"`
	Chemin    string    `json:"cheminFichier"`
	CreatedAt time.Time `json:"dateCreation,omitempty"`
	UpdatedAt time.Time `json:"dateModification,omitempty"`
}
