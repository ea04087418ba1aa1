/*
Package gymsdk provides a client SDK for the gymtab membership service.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (health probes) and session creation
  - Session: bearer-authenticated operations against the /v1 API

Create a client and a session from a token minted by gymctl:

	client := gymsdk.NewSDKClient("https://gym.example.com")
	health, err := client.GetLiveness(ctx)

	session := client.NewSession(token, jwtx.ScopeStaff)
	res, err := session.CheckIn(ctx, gymsdk.CheckInRequest{MemberID: id, Method: gymsdk.MethodManual})

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status and the
{error, error_description} envelope written by the server:

	_, err := session.CheckIn(ctx, req)
	if gymsdk.IsOverdueFee(err) {
		// member must pay before entering
	}
*/
package gymsdk
