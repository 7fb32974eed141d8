package domain

// Les règles d'autorisation sont définies ici une seule fois et consommées
// uniformément par les handlers et le magasin.

// CanEditDay indique si l'acteur peut modifier le statut d'une journée :
// administrateur, ou infirmière propriétaire de la ligne.
func CanEditDay(actor *User, nurse *Nurse) bool {
	if actor == nil || nurse == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	return nurse.UserID != "" && nurse.UserID == actor.ID
}

// CanDeleteNote indique si l'acteur peut supprimer une note :
// administrateur, ou auteur de la note.
func CanDeleteNote(actor *User, note Note) bool {
	if actor == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	return note.AuthorID != "" && note.AuthorID == actor.ID
}

// CanReplaceNotes vérifie qu'un remplacement en bloc de la séquence ne
// retire aucune note que l'acteur n'aurait pas le droit de supprimer une
// à une. Les notes sont identifiées par leur timestamp.
func CanReplaceNotes(actor *User, current, proposed []Note) error {
	kept := make(map[int64]struct{}, len(proposed))
	for _, n := range proposed {
		kept[n.Timestamp] = struct{}{}
	}
	for _, n := range current {
		if _, ok := kept[n.Timestamp]; ok {
			continue
		}
		if !CanDeleteNote(actor, n) {
			return NewAuthorizationError("seul l'auteur de la note ou un administrateur peut la supprimer")
		}
	}
	return nil
}
