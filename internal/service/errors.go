package service

import "errors"

// Messages are shown to attendees as-is.
var (
	ErrEventNotFound        = errors.New("Événement introuvable.")
	ErrTicketNotFound       = errors.New("Billet introuvable.")
	ErrRegistrationNotFound = errors.New("Inscription introuvable.")
	ErrOrderNotFound        = errors.New("Commande introuvable.")

	ErrSalesClosed   = errors.New("Les inscriptions ne sont pas ouvertes.")
	ErrEventFull     = errors.New("Événement complet.")
	ErrTicketSoldOut = errors.New("Billet épuisé.")
	ErrTicketInUse   = errors.New("Des inscriptions existent pour ce billet.")
	ErrEventInUse    = errors.New("Des inscriptions existent pour cet événement.")
	ErrInvalidStatus = errors.New("Statut invalide.")
	ErrSlugTaken     = errors.New("Ce slug est déjà utilisé.")

	ErrPromoNotFound      = errors.New("Code promo introuvable.")
	ErrPromoExpired       = errors.New("Code promo expiré.")
	ErrPromoNotYetActive  = errors.New("Code promo pas encore actif.")
	ErrPromoExhausted     = errors.New("Code promo épuisé.")
	ErrPromoNotApplicable = errors.New("Code promo non valable pour cet événement.")
	ErrPromoDiscountKind  = errors.New("Le code doit avoir soit un pourcentage (1 à 100) soit un montant positif.")
	ErrPromoDuplicate     = errors.New("Ce code promo existe déjà.")
	ErrPromoInvalidWindow = errors.New("La date de fin doit suivre la date de début.")

	ErrTransferNotFound       = errors.New("Lien de transfert invalide.")
	ErrTransferAlreadyClaimed = errors.New("Ce billet a déjà été réclamé.")
	ErrAlreadyOwner           = errors.New("Tu possèdes déjà ce billet.")
	ErrNotOwner               = errors.New("Ce billet ne t'appartient pas.")

	ErrAlreadyCheckedIn      = errors.New("Participant déjà enregistré.")
	ErrRegistrationRejected  = errors.New("Inscription refusée.")
	ErrTransferAfterCheckIn  = errors.New("Un billet déjà scanné ne peut plus être transféré.")
	ErrDocumentNotRequired   = errors.New("Ce billet ne demande pas de justificatif.")
	ErrInvalidApprovalStatus = errors.New("Statut d'approbation invalide.")

	ErrPaymentUnavailable = errors.New("Le paiement est momentanément indisponible.")
)
