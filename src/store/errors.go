package store

import (
	"fmt"
	"os"

	"empadas-server/src/apperr"
	"empadas-server/src/drive"
)

// FriendlyDriveError maps a storage failure onto the error taxonomy with the
// operator-facing guidance the admin UI renders. verbose controls whether the
// raw cause is appended (kept out of production responses).
func FriendlyDriveError(scope string, err error, verbose bool) *apperr.Error {
	if IsNoQuotaError(err) {
		saLine := ""
		if sa := drive.ServiceAccountEmail(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON_BASE64")); sa != "" {
			saLine = fmt.Sprintf(" Service account: %s.", sa)
		}
		return apperr.PreconditionFailed(fmt.Sprintf(
			"Não foi possível gravar no Google Drive (%s).%s"+
				" Isso acontece quando a pasta está em um Drive pessoal (Meu Drive) e a autenticação é via Service Account (sem quota)."+
				" Solução recomendada: crie/use um Shared Drive (Google Workspace), adicione a service account como membro (Content manager/Editor),"+
				" crie uma pasta lá e atualize GOOGLE_DRIVE_ADMIN_FOLDER_ID para a nova pasta.",
			scope, saLine))
	}

	detail := ""
	if verbose && err != nil {
		detail = fmt.Sprintf(" Detalhe: %s.", err.Error())
	}
	return apperr.Internal(fmt.Sprintf(
		"Falha ao acessar o Google Drive (%s). "+
			"Verifique se as env vars GOOGLE_SERVICE_ACCOUNT_JSON_BASE64 e GOOGLE_DRIVE_ADMIN_FOLDER_ID estão configuradas "+
			"e se a service account tem permissão de Editor na pasta do Drive.%s",
		scope, detail))
}
