package webpath

const (
	Home = "/"

	Api        = "/api"
	ApiHome    = Api + Home
	ApiHistory = Api + "/history"
	ApiRatings = Api + "/ratings"
	ApiRecords = Api + "/records"
	ApiMaps    = Api + "/maps"
	ApiPlayer  = Api + "/players/:id"
	ApiDraft   = Api + "/draft"
	ApiVeto    = Api + "/veto"
	ApiTeam    = Api + "/team"

	ApiDraftState   = ApiDraft + "/state"
	ApiDraftFormat  = ApiDraft + "/format"
	ApiDraftConfirm = ApiDraft + "/confirm"
	ApiDraftToggle  = ApiDraft + "/toggle"
	ApiDraftCaptain = ApiDraft + "/captain"
	ApiDraftFlip    = ApiDraft + "/flip"
	ApiDraftStart   = ApiDraft + "/start"
	ApiDraftPick    = ApiDraft + "/pick"
	ApiDraftReset   = ApiDraft + "/reset"

	ApiVetoState = ApiVeto + "/state"
	ApiVetoStart = ApiVeto + "/start"
	ApiVetoClick = ApiVeto + "/click"
	ApiVetoSide  = ApiVeto + "/side"

	ApiTeamState  = ApiTeam + "/state"
	ApiTeamToggle = ApiTeam + "/toggle"
	ApiTeamSave   = ApiTeam + "/save"
)

func Path() map[string]string {
	return map[string]string{
		"Home":       Home,
		"Api":        Api,
		"ApiHome":    ApiHome,
		"ApiHistory": ApiHistory,
		"ApiRatings": ApiRatings,
		"ApiRecords": ApiRecords,
		"ApiMaps":    ApiMaps,
		"ApiDraft":   ApiDraft,
		"ApiVeto":    ApiVeto,
		"ApiTeam":    ApiTeam,
	}
}
