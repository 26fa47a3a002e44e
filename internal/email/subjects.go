package email

const (
	subjectQuoteRequestAck      = "Nous avons bien reçu votre demande de devis"
	subjectQuoteRequestAlertFmt = "Nouvelle demande de devis de %s"
	subjectBookingConfirmation  = "Votre rendez-vous téléphonique est confirmé"
	subjectBookingAlertFmt      = "Nouveau rendez-vous réservé par %s"
	subjectBookingCancelled     = "Votre rendez-vous a été annulé"
	subjectBookingCancelAlert   = "Un rendez-vous a été annulé"
	subjectBookingReminder      = "Rappel : votre rendez-vous a lieu demain"
	subjectInvite               = "Votre accès au portail Nexus"
	subjectQuoteProposalFmt     = "Votre devis %s"
	subjectQuoteAcceptedFmt     = "Devis %s accepté"
)
